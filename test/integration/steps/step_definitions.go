package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/minn-platform/backend/internal/domain/entity"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
	"github.com/minn-platform/backend/test/integration/mock"
)

// InitializeScenario binds the step grammar to a shared test context.
func InitializeScenario(ctx *godog.ScenarioContext) {
	reservePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"users":                      &model.UserModel{},
			"refresh_tokens":             &model.RefreshTokenModel{},
			"password_reset_tokens":      &model.PasswordResetTokenModel{},
			"audit_events":               &model.AuditEventModel{},
			"minerals":                   &model.MineralModel{},
			"mineral_production_records": &model.ProductionRecordModel{},
			"mineral_deposits":           &model.DepositModel{},
			"email_queue":                &model.EmailQueueModel{},
		}),
	}

	testDB = test.db
	testRedis = mock.NewRedis()

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Server and reference data
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the mineral reference data is loaded$`, test.theMineralReferenceDataIsLoaded)

	// Seeded accounts and tokens
	ctx.Given(`^a user exists with username "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithUsernameAndPassword)
	ctx.Given(`^an? "([^"]*)" user exists with username "([^"]*)" and password "([^"]*)"$`, test.aRoleUserExists)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the account "([^"]*)" is locked$`, test.theAccountIsLocked)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists for "([^"]*)"$`, test.anExpiredPasswordResetTokenExistsFor)

	// Request headers
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Requests
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I fail to log in as "([^"]*)" (\d+) times$`, test.iFailToLogInAsTimes)

	// Response checks
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should contain "([^"]*)"$`, test.theResponseFieldShouldContain)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response body should contain "([^"]*)"$`, test.theResponseBodyShouldContain)

	// Row checks
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) theMineralReferenceDataIsLoaded() error {
	t.startServer()
	return testSeeder.Execute(context.Background())
}

func (t *testContext) aUserExistsWithUsernameAndPassword(username, password string) error {
	return t.createUser(username, username+"@example.org", password, entity.RoleResearcher)
}

func (t *testContext) aRoleUserExists(role, username, password string) error {
	if !entity.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	return t.createUser(username, username+"@example.org", password, entity.Role(role))
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	return t.createUser(username, email, password, entity.RoleResearcher)
}

func (t *testContext) createUser(username, email, password string, role entity.Role) error {
	first, last := nameFromUsername(username)
	userID := uuid.New()
	t.currentUserID = userID
	t.currentPublicID = t.newPublicID(first, last)

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		PublicID:     t.currentPublicID,
		Username:     username,
		FirstName:    first,
		LastName:     last,
		Email:        email,
		Country:      "South Africa",
		Role:         string(role),
		PasswordHash: hashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(user).Error
}

// newPublicID builds an account identifier in the production shape without
// going through the identity service; rows are created directly.
func (t *testContext) newPublicID(first, last string) string {
	t.userSeq++
	initials := strings.ToUpper(first[:1] + last[:1])
	return fmt.Sprintf("MINN%s%s%04d", time.Now().UTC().Format("060102"), initials, t.userSeq)
}

func nameFromUsername(username string) (string, string) {
	first, last := "Test", "User"
	parts := strings.Split(username, ".")
	if len(parts) > 0 && parts[0] != "" {
		first = capitalize(parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		last = capitalize(parts[1])
	}
	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theAccountIsLocked(username string) error {
	until := time.Now().UTC().Add(testLockoutDuration)
	result := t.db.DbConn.Model(&model.UserModel{}).
		Where("username = ?", username).
		Updates(map[string]any{"failed_logins": testMaxFailedLogins, "locked_until": until})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user with username %q", username)
	}
	return nil
}

// iAmLoggedInAs mints a token pair for an existing user, bypassing the
// login endpoint so authorization scenarios stay independent of it.
func (t *testContext) iAmLoggedInAs(username string) error {
	var userModel model.UserModel
	if err := t.db.DbConn.Where("username = ?", username).First(&userModel).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	now := time.Now().UTC()

	accessToken, err := signTestToken(userModel, "access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshToken, err := signTestToken(userModel, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	// The refresh endpoint checks the stored row, so persist it
	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      userModel.ID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	return t.db.DbConn.Create(refreshTokenModel).Error
}

func signTestToken(user model.UserModel, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"email":      user.Email,
		"role":       user.Role,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(ttl)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "minn-platform",
		"sub":        user.ID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	t.resetToken = fmt.Sprintf("test-reset-token-%s", uuid.New().String())

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.resetToken,
		UserID:    user.ID,
		Email:     email,
		Used:      false,
		ExpiresAt: time.Now().UTC().Add(1 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}

	return t.db.DbConn.Create(resetTokenModel).Error
}

func (t *testContext) anExpiredPasswordResetTokenExistsFor(email string) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	t.expiredToken = fmt.Sprintf("expired-reset-token-%s", uuid.New().String())

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.expiredToken,
		UserID:    user.ID,
		Email:     email,
		Used:      false,
		ExpiresAt: time.Now().UTC().Add(-1 * time.Hour),
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	}

	return t.db.DbConn.Create(resetTokenModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // no Authorization header gets attached
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) iFailToLogInAsTimes(username string, count int) error {
	body := fmt.Sprintf(`{"username": %q, "password": "not-the-password"}`, username)
	for i := 0; i < count; i++ {
		if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", []byte(body)); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldContain(field, expected string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("field '%s' is not a string: %v", field, value)
	}
	if !strings.Contains(text, expected) {
		return fmt.Errorf("field '%s' does not contain '%s': %s", field, expected, text)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, value)
	}
	if len(arr) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(arr))
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	var raw string
	switch v := t.response.body.(type) {
	case string:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to re-encode response body: %w", err)
		}
		raw = string(encoded)
	}

	if !strings.Contains(raw, expected) {
		return fmt.Errorf("response body does not contain %q: %s", expected, raw)
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := fieldAt(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %q, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	count, err := t.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %q matching %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// countRows counts rows in a table, optionally filtered by column
// equality. The table must be one the mock database was built with.
func (t *testContext) countRows(table string, criteria map[string]any) (int64, error) {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table %q not found in models", table)
	}

	query := t.db.DbConn.Unscoped().Model(entityModel)
	for column, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
