package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	md "github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/middleware"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/validate"
	_ "github.com/Rudraa10-bot/Automated-Library-Checkout-System/swagger"
)

type Handler struct {
	svc CirculationService
	log *zap.Logger
}

func New(svc CirculationService, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, md.XBorrowerIDHeader},
	}))
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	api.GET("/items", h.Search)
	api.GET("/items/:barcode/availability", h.Availability)
	api.GET("/requests/notified", h.ListNotified)
	api.GET("/discover", h.Discover)
	api.GET("/analytics", h.Overview)

	me := api.Group("", md.BorrowerContext)
	me.POST("/items/:barcode/issue", h.Issue)
	me.POST("/items/:barcode/return", h.Return)
	me.POST("/items/:barcode/requests", h.Request)
	me.GET("/requests", h.ListPending)
	me.DELETE("/requests/:id", h.Cancel)
	me.GET("/points", h.Points)
	me.GET("/recommendations/me", h.Recommendations)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Issue godoc
// @Summary  Issue an item to the calling borrower
// @Tags     circulation
// @Param    X-Borrower-Id header int    true "borrower id"
// @Param    barcode       path   string true "item barcode"
// @Success  200 {object} model.Loan
// @Failure  404 {object} errs.ErrorResponse
// @Failure  409 {object} errs.ErrorResponse
// @Router   /items/{barcode}/issue [post]
func (h *Handler) Issue(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	loan, err := h.svc.Issue(ctx, borrowerID, c.Param("barcode"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

// Return godoc
// @Summary  Return an item held by the calling borrower
// @Tags     circulation
// @Param    X-Borrower-Id header int    true "borrower id"
// @Param    barcode       path   string true "item barcode"
// @Success  200 {object} model.Loan
// @Failure  404 {object} errs.ErrorResponse
// @Failure  409 {object} errs.ErrorResponse
// @Router   /items/{barcode}/return [post]
func (h *Handler) Return(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	loan, err := h.svc.Return(ctx, borrowerID, c.Param("barcode"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

type availabilityResponse struct {
	Barcode   string `json:"barcode"`
	Available bool   `json:"available"`
}

func (h *Handler) Availability(c echo.Context) error {
	barcode := c.Param("barcode")
	ok, err := h.svc.IsAvailable(c.Request().Context(), barcode)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, availabilityResponse{Barcode: barcode, Available: ok})
}

// Search godoc
// @Summary  Search the catalog
// @Tags     catalog
// @Param    query         query string false "substring of title, author, isbn or barcode"
// @Param    availableOnly query bool   false "only items with copies on the shelf"
// @Param    yearFrom      query int    false "earliest publication year"
// @Param    yearTo        query int    false "latest publication year"
// @Param    sortBy        query string false "title, author or year"
// @Param    order         query string false "asc or desc"
// @Success  200 {array} model.Item
// @Router   /items [get]
func (h *Handler) Search(c echo.Context) error {
	var q model.SearchQuery
	if err := queryBinder.BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	key, err := model.ParseSortKey(q.SortBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	order, err := model.ParseSortOrder(q.Order)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter := model.ItemFilter{
		Query:         q.Query,
		AvailableOnly: q.AvailableOnly,
		YearFrom:      q.YearFrom,
		YearTo:        q.YearTo,
	}
	items, err := h.svc.Search(c.Request().Context(), filter, key, order)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Request(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	rv, err := h.svc.Request(ctx, borrowerID, c.Param("barcode"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}

func (h *Handler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	if err = h.svc.Cancel(ctx, borrowerID, id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListPending(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListPending(ctx, borrowerID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListNotified(c echo.Context) error {
	list, err := h.svc.ListNotified(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type pointsResponse struct {
	BorrowerID int64 `json:"borrowerId"`
	Points     int64 `json:"points"`
}

func (h *Handler) Points(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	points, err := h.svc.Points(ctx, borrowerID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, pointsResponse{BorrowerID: borrowerID, Points: points})
}

// Recommendations godoc
// @Summary  Ranked lists for the calling borrower
// @Tags     recommendations
// @Param    X-Borrower-Id header int true  "borrower id"
// @Param    limit         query  int false "list size"
// @Success  200 {object} model.Recommendations
// @Failure  404 {object} errs.ErrorResponse
// @Router   /recommendations/me [get]
func (h *Handler) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	borrowerID, err := borrower(c)
	if err != nil {
		return err
	}
	limit, err := bindLimit(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.RecommendFor(ctx, borrowerID, limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Discover(c echo.Context) error {
	limit, err := bindLimit(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Discover(c.Request().Context(), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Overview(c echo.Context) error {
	o, err := h.svc.Overview(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// queryBinder ignores the body, so a GET sent with one still binds.
var queryBinder = &echo.DefaultBinder{}

func bindLimit(c echo.Context) (int, error) {
	var q model.LimitQuery
	if err := queryBinder.BindQueryParams(c, &q); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(q); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return q.Limit, nil
}

func borrower(c echo.Context) (int64, error) {
	id, ok := md.BorrowerID(c.Request().Context())
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, errs.ErrBorrowerRequired.Error())
	}
	return id, nil
}

var statuses = map[string]int{
	errs.CodeNotFound:         http.StatusNotFound,
	errs.CodeNotAvailable:     http.StatusConflict,
	errs.CodeAlreadyIssued:    http.StatusConflict,
	errs.CodeDuplicateRequest: http.StatusConflict,
	errs.CodeNoActiveLoan:     http.StatusConflict,
	errs.CodeForbidden:        http.StatusForbidden,
}

func (h *Handler) fail(c echo.Context, err error) error {
	code := errs.Code(err)
	status, ok := statuses[code]
	if !ok {
		status = http.StatusInternalServerError
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.JSON(status, errs.ErrorResponse{Message: err.Error(), Code: code})
}
