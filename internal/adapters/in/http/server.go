// Package http exposes the dispatch use cases over a JSON API.
package http

import (
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler   commands.CreateDeliveryCommandHandler
	createDeliveriesHandler commands.CreateDeliveriesCommandHandler
	endDeliveryHandler      commands.EndDeliveryCommandHandler
	reorderHandler          commands.ReorderDeliveriesCommandHandler

	// Query handlers
	getDeliveryHandler         queries.GetDeliveryQueryHandler
	getDeliveriesByDateHandler queries.GetDeliveriesByDateQueryHandler
	getOpenDeliveriesHandler   queries.GetOpenDeliveriesQueryHandler
	getOpenForDriverHandler    queries.GetOpenDeliveriesForDriverQueryHandler
	getTodayForDriverHandler   queries.GetTodayDeliveriesForDriverQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	createDeliveriesHandler commands.CreateDeliveriesCommandHandler,
	endDeliveryHandler commands.EndDeliveryCommandHandler,
	reorderHandler commands.ReorderDeliveriesCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getDeliveriesByDateHandler queries.GetDeliveriesByDateQueryHandler,
	getOpenDeliveriesHandler queries.GetOpenDeliveriesQueryHandler,
	getOpenForDriverHandler queries.GetOpenDeliveriesForDriverQueryHandler,
	getTodayForDriverHandler queries.GetTodayDeliveriesForDriverQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:      createDeliveryHandler,
		createDeliveriesHandler:    createDeliveriesHandler,
		endDeliveryHandler:         endDeliveryHandler,
		reorderHandler:             reorderHandler,
		getDeliveryHandler:         getDeliveryHandler,
		getDeliveriesByDateHandler: getDeliveriesByDateHandler,
		getOpenDeliveriesHandler:   getOpenDeliveriesHandler,
		getOpenForDriverHandler:    getOpenForDriverHandler,
		getTodayForDriverHandler:   getTodayForDriverHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.POST("/deliveries/batch", s.CreateDeliveries)
	api.POST("/deliveries/:id/end", s.EndDelivery)
	api.GET("/deliveries/open", s.GetOpenDeliveries)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.GET("/deliveries", s.GetDeliveriesByDate)

	api.PUT("/drivers/:driverId/route", s.ReorderDeliveries)
	api.GET("/drivers/:driverId/deliveries/open", s.GetOpenDeliveriesForDriver)
	api.GET("/drivers/:driverId/deliveries/today", s.GetTodayDeliveriesForDriver)
}

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DeliveryJSON is the API representation of one delivery.
type DeliveryJSON struct {
	ID             int64      `json:"id"`
	CustomerID     int64      `json:"customerId"`
	DriverID       int64      `json:"driverId"`
	Address        string     `json:"address"`
	Comment        string     `json:"comment"`
	CreatedAt      time.Time  `json:"createdAt"`
	EndedAt        *time.Time `json:"endedAt"`
	EndImage       string     `json:"endImage"`
	EndOrderNumber int        `json:"endOrderNumber"`
}

type createDeliveryRequest struct {
	CustomerID int64  `json:"customerId"`
	DriverID   int64  `json:"driverId"`
	Address    string `json:"address"`
	Comment    string `json:"comment"`
}

type createDeliveriesRequest struct {
	Deliveries []createDeliveryRequest `json:"deliveries"`
}

type endDeliveryRequest struct {
	DriverID int64  `json:"driverId"`
	Image    string `json:"image"`
}

type reorderEntryRequest struct {
	DeliveryID     int64 `json:"deliveryId"`
	EndOrderNumber int   `json:"endOrderNumber"`
}

type reorderRequest struct {
	DriverID int64                 `json:"driverId"`
	Orders   []reorderEntryRequest `json:"orders"`
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req createDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := buildCreateDeliveryCommand(req)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateDeliveries handles POST /api/v1/deliveries/batch. The batch is
// processed in order and aborts on the first failure; deliveries created
// before the failure stay created.
func (s *Server) CreateDeliveries(ctx echo.Context) error {
	var req createDeliveriesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.CreateDeliveryCommand, 0, len(req.Deliveries))
	for _, item := range req.Deliveries {
		cmd, err := buildCreateDeliveryCommand(item)
		if err != nil {
			return errorJSON(ctx, err)
		}
		items = append(items, cmd)
	}

	cmd, err := commands.NewCreateDeliveriesCommand(items)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.createDeliveriesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// EndDelivery handles POST /api/v1/deliveries/:id/end.
func (s *Server) EndDelivery(ctx echo.Context) error {
	deliveryID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery identifier")
	}

	var req endDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.NewID(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver identifier")
	}

	cmd, err := commands.NewEndDeliveryCommand(driverID, deliveryID, req.Image)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.endDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReorderDeliveries handles PUT /api/v1/drivers/:driverId/route.
func (s *Server) ReorderDeliveries(ctx echo.Context) error {
	driverID, err := idParam(ctx, "driverId")
	if err != nil {
		return badRequest(ctx, "Invalid driver identifier")
	}

	var req reorderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	entries := make([]commands.ReorderEntry, 0, len(req.Orders))
	for _, item := range req.Orders {
		deliveryID, idErr := kernel.NewID(item.DeliveryID)
		if idErr != nil {
			return badRequest(ctx, "Invalid delivery identifier")
		}

		entry, entryErr := commands.NewReorderEntry(deliveryID, item.EndOrderNumber)
		if entryErr != nil {
			return errorJSON(ctx, entryErr)
		}
		entries = append(entries, entry)
	}

	cmd, err := commands.NewReorderDeliveriesCommand(driverID, entries)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.reorderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery identifier")
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if resp == nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Delivery not found",
		})
	}

	return ctx.JSON(http.StatusOK, toDeliveryJSON(*resp))
}

// GetDeliveriesByDate handles GET /api/v1/deliveries?date=2006-01-02.
func (s *Server) GetDeliveriesByDate(ctx echo.Context) error {
	date, err := time.Parse("2006-01-02", ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "Invalid or missing date, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetDeliveriesByDateQuery(date)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.getDeliveriesByDateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryJSONs(resp))
}

// GetOpenDeliveries handles GET /api/v1/deliveries/open.
func (s *Server) GetOpenDeliveries(ctx echo.Context) error {
	resp, err := s.getOpenDeliveriesHandler.Handle(ctx.Request().Context(), queries.NewGetOpenDeliveriesQuery())
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryJSONs(resp))
}

// GetOpenDeliveriesForDriver handles GET /api/v1/drivers/:driverId/deliveries/open.
func (s *Server) GetOpenDeliveriesForDriver(ctx echo.Context) error {
	driverID, err := idParam(ctx, "driverId")
	if err != nil {
		return badRequest(ctx, "Invalid driver identifier")
	}

	query, err := queries.NewGetOpenDeliveriesForDriverQuery(driverID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.getOpenForDriverHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryJSONs(resp))
}

// GetTodayDeliveriesForDriver handles GET /api/v1/drivers/:driverId/deliveries/today.
func (s *Server) GetTodayDeliveriesForDriver(ctx echo.Context) error {
	driverID, err := idParam(ctx, "driverId")
	if err != nil {
		return badRequest(ctx, "Invalid driver identifier")
	}

	query, err := queries.NewGetTodayDeliveriesForDriverQuery(driverID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.getTodayForDriverHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryJSONs(resp))
}

func buildCreateDeliveryCommand(req createDeliveryRequest) (commands.CreateDeliveryCommand, error) {
	customerID, err := kernel.NewID(req.CustomerID)
	if err != nil {
		return commands.CreateDeliveryCommand{}, errs.NewBadRequestError("invalid customer identifier")
	}

	driverID, err := kernel.NewID(req.DriverID)
	if err != nil {
		return commands.CreateDeliveryCommand{}, errs.NewBadRequestError("invalid driver identifier")
	}

	return commands.NewCreateDeliveryCommand(customerID, driverID, req.Address, req.Comment)
}

func idParam(ctx echo.Context, name string) (kernel.ID, error) {
	raw, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return kernel.ID{}, err
	}
	return kernel.NewID(raw)
}

func toDeliveryJSON(resp queries.DeliveryResponse) DeliveryJSON {
	return DeliveryJSON{
		ID:             resp.ID,
		CustomerID:     resp.CustomerID,
		DriverID:       resp.DriverID,
		Address:        resp.Address,
		Comment:        resp.Comment,
		CreatedAt:      resp.CreatedAt,
		EndedAt:        resp.EndedAt,
		EndImage:       resp.EndImage,
		EndOrderNumber: resp.EndOrderNumber,
	}
}

func toDeliveryJSONs(resps []queries.DeliveryResponse) []DeliveryJSON {
	out := make([]DeliveryJSON, len(resps))
	for i, resp := range resps {
		out[i] = toDeliveryJSON(resp)
	}
	return out
}

func errorJSON(ctx echo.Context, err error) error {
	code := errs.CodeOf(err)
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
