package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/logging"
	"github.com/prognoshealth/fpdsproxy/proxy"
	"go.uber.org/zap"
)

// Handler serves searches through a proxy.Router.
type Handler struct {
	Service *Service

	// StrictErrors answers failed searches with 500. Otherwise they are
	// answered with 200 and success:false in the body.
	StrictErrors bool
}

// NewHandler returns a Handler for service.
func NewHandler(service *Service, strict bool) *Handler {
	return &Handler{Service: service, StrictErrors: strict}
}

func (h *Handler) failureStatus() int {
	if h.StrictErrors {
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

// Search is the RouteHandler of the search endpoint. Every outcome, including
// a panic, is answered with an envelope.
func (h *Handler) Search(rctx *proxy.RouteContext) (response events.APIGatewayProxyResponse, err error) {
	log := logging.FromContext(rctx.Context)

	var res Result

	defer func() {
		if r := recover(); r != nil {
			perr := errors.Errorf("panic: %v", r)
			log.Error("search panicked", zap.Error(perr))
			response, err = proxy.JSON(h.failureStatus(), Failure(res.Query, perr))
		}
	}()

	filters := fpds.FiltersFromParams(rctx.Params)

	res, err = h.Service.Search(rctx.Context, filters)
	if err != nil {
		env := Failure(res.Query, err)
		log.Warn("search failed",
			zap.String("type", string(env.Type)),
			zap.String("query", string(res.Query)),
			zap.Error(err),
		)
		return proxy.JSON(h.failureStatus(), env)
	}

	log.Info("search completed", zap.String("query", string(res.Query)), zap.Int("count", len(res.Records)))
	return proxy.JSON(http.StatusOK, Success(res.Query, res.Records))
}

// NotFound is the router's CatchAll.
func (h *Handler) NotFound(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	path := request.RawPath
	if path == "" {
		path = request.RequestContext.HTTP.Path
	}

	return proxy.JSON(http.StatusNotFound, Envelope{
		Error:   "Not found",
		Details: fmt.Sprintf("no route for '%s %s'", request.RequestContext.HTTP.Method, path),
		Type:    RouteNotFound,
	})
}

// Error is the router's CatchError. It answers with a 500 envelope.
func (h *Handler) Error(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
	logging.FromContext(ctx).Error("request failed", zap.String("path", request.RawPath), zap.Error(err))
	return proxy.JSON(http.StatusInternalServerError, Failure("", err))
}
