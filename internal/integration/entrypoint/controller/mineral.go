package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/minn-platform/backend/internal/application/usecase/mineral"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/entrypoint/dto"
)

// MineralController handles the critical-minerals reference data endpoints.
type MineralController struct {
	listUseCase       *mineral.ListMineralsUseCase
	productionUseCase *mineral.GetProductionUseCase
	depositsUseCase   *mineral.GetDepositsUseCase
}

// NewMineralController creates a new mineral controller instance.
func NewMineralController(
	listUseCase *mineral.ListMineralsUseCase,
	productionUseCase *mineral.GetProductionUseCase,
	depositsUseCase *mineral.GetDepositsUseCase,
) *MineralController {
	return &MineralController{
		listUseCase:       listUseCase,
		productionUseCase: productionUseCase,
		depositsUseCase:   depositsUseCase,
	}
}

// List handles GET /minerals requests.
func (c *MineralController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleMineralError(ctx, err)
		return
	}

	minerals := make([]dto.MineralResponse, 0, len(output.Minerals))
	for _, m := range output.Minerals {
		minerals = append(minerals, dto.ToMineralResponse(m))
	}

	ctx.JSON(http.StatusOK, dto.MineralListResponse{
		Minerals: minerals,
		Count:    len(minerals),
	})
}

// Production handles GET /minerals/:name/production requests.
func (c *MineralController) Production(ctx *gin.Context) {
	output, err := c.productionUseCase.Execute(ctx.Request.Context(), mineral.GetProductionInput{
		Name: ctx.Param("name"),
	})
	if err != nil {
		c.handleMineralError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductionResponse(output.Mineral, output.Series))
}

// Deposits handles GET /deposits requests. The response is a GeoJSON
// FeatureCollection of every known deposit site, one point per deposit,
// ready for map layers.
func (c *MineralController) Deposits(ctx *gin.Context) {
	output, err := c.depositsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleMineralError(ctx, err)
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, d := range output.Deposits {
		feature := geojson.NewFeature(orb.Point{d.Lon, d.Lat})
		feature.Properties["mineral"] = d.Mineral
		feature.Properties["symbol"] = d.Symbol
		feature.Properties["site"] = d.Site
		feature.Properties["country"] = d.Country
		fc.Append(feature)
	}

	ctx.JSON(http.StatusOK, fc)
}

// handleMineralError handles mineral errors and returns appropriate HTTP responses.
func (c *MineralController) handleMineralError(ctx *gin.Context, err error) {
	var mineralErr *domainerror.MineralError
	if errors.As(err, &mineralErr) {
		ctx.JSON(c.getStatusCodeForMineralError(mineralErr.Code), dto.ErrorResponse{
			Error: mineralErr.Message,
			Code:  string(mineralErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForMineralError maps mineral error codes to HTTP status codes.
func (c *MineralController) getStatusCodeForMineralError(code domainerror.MineralErrorCode) int {
	switch code {
	case domainerror.ErrCodeMineralNotFound, domainerror.ErrCodeNoProductionData:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
