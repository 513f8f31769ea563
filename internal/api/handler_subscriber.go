package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/Botopia-SAS/DashboardSafestays/internal/trigger"
)

// --- Huma Input/Output types ---

type RegisterSubscriberBody struct {
	Name     string   `json:"name" doc:"Subscriber name" required:"true" minLength:"1"`
	Endpoint string   `json:"endpoint" doc:"JSON-RPC endpoint URL" required:"true" minLength:"1"`
	Topics   []string `json:"topics,omitempty" doc:"Topics to follow (properties, locations); empty means all"`
}

type RegisterSubscriberInput struct {
	Body RegisterSubscriberBody
}

type SubscriberResponse struct {
	ID        uuid.UUID `json:"id" doc:"Subscriber UUID"`
	Name      string    `json:"name" doc:"Subscriber name"`
	Endpoint  string    `json:"endpoint" doc:"JSON-RPC endpoint URL"`
	Topics    []string  `json:"topics" doc:"Followed topics"`
	Status    string    `json:"status" doc:"Subscriber status" example:"active"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
}

type RegisterSubscriberOutput struct {
	Body SubscriberResponse
}

type ListSubscribersInput struct{}

type ListSubscribersOutput struct {
	Body []SubscriberResponse
}

type GetSubscriberInput struct {
	SubscriberID string `path:"subscriber_id" doc:"Subscriber UUID" format:"uuid"`
}

type GetSubscriberOutput struct {
	Body SubscriberResponse
}

type DeleteSubscriberInput struct {
	SubscriberID string `path:"subscriber_id" doc:"Subscriber UUID" format:"uuid"`
}

// --- Handler ---

type SubscriberHandler struct {
	registry *trigger.SubscriberRegistry
	logger   *slog.Logger
}

func NewSubscriberHandler(registry *trigger.SubscriberRegistry, logger *slog.Logger) *SubscriberHandler {
	return &SubscriberHandler{registry: registry, logger: logger}
}

func registerSubscriberRoutes(api huma.API, h *SubscriberHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "register-subscriber",
		Method:        http.MethodPost,
		Path:          "/v1/subscribers",
		Summary:       "Register a change subscriber",
		Tags:          []string{"subscribers"},
		DefaultStatus: http.StatusCreated,
	}, h.RegisterSubscriber)

	huma.Register(api, huma.Operation{
		OperationID: "list-subscribers",
		Method:      http.MethodGet,
		Path:        "/v1/subscribers",
		Summary:     "List all subscribers",
		Tags:        []string{"subscribers"},
	}, h.ListSubscribers)

	huma.Register(api, huma.Operation{
		OperationID: "get-subscriber",
		Method:      http.MethodGet,
		Path:        "/v1/subscribers/{subscriber_id}",
		Summary:     "Get a subscriber by ID",
		Tags:        []string{"subscribers"},
	}, h.GetSubscriber)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-subscriber",
		Method:        http.MethodDelete,
		Path:          "/v1/subscribers/{subscriber_id}",
		Summary:       "Delete a subscriber",
		Tags:          []string{"subscribers"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteSubscriber)
}

func (h *SubscriberHandler) RegisterSubscriber(ctx context.Context, input *RegisterSubscriberInput) (*RegisterSubscriberOutput, error) {
	if u, err := url.Parse(input.Body.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, huma.Error400BadRequest("endpoint must be an absolute http(s) URL")
	}
	for _, topic := range input.Body.Topics {
		if !trigger.ValidTopic(topic) {
			return nil, huma.Error400BadRequest(fmt.Sprintf("unknown topic %q", topic))
		}
	}

	s := &trigger.Subscriber{
		Name:     input.Body.Name,
		Endpoint: input.Body.Endpoint,
		Topics:   input.Body.Topics,
	}
	if err := h.registry.Register(ctx, s); err != nil {
		h.logger.Error("failed to register subscriber", "name", s.Name, "error", err)
		return nil, huma.Error500InternalServerError("failed to register subscriber")
	}

	h.logger.Info("subscriber registered", "id", s.ID, "name", s.Name, "endpoint", s.Endpoint)

	return &RegisterSubscriberOutput{Body: subscriberToResponse(s)}, nil
}

func (h *SubscriberHandler) ListSubscribers(ctx context.Context, input *ListSubscribersInput) (*ListSubscribersOutput, error) {
	subs := h.registry.List()
	resp := make([]SubscriberResponse, len(subs))
	for i, s := range subs {
		resp[i] = subscriberToResponse(s)
	}
	return &ListSubscribersOutput{Body: resp}, nil
}

func (h *SubscriberHandler) GetSubscriber(ctx context.Context, input *GetSubscriberInput) (*GetSubscriberOutput, error) {
	id, err := uuid.Parse(input.SubscriberID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid subscriber_id")
	}

	s, err := h.registry.Get(id)
	if err != nil {
		return nil, huma.Error404NotFound("subscriber not found")
	}

	return &GetSubscriberOutput{Body: subscriberToResponse(s)}, nil
}

func (h *SubscriberHandler) DeleteSubscriber(ctx context.Context, input *DeleteSubscriberInput) (*struct{}, error) {
	id, err := uuid.Parse(input.SubscriberID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid subscriber_id")
	}

	if err := h.registry.Delete(ctx, id); err != nil {
		if errors.Is(err, trigger.ErrSubscriberNotFound) {
			return nil, huma.Error404NotFound("subscriber not found")
		}
		h.logger.Error("failed to delete subscriber", "id", id, "error", err)
		return nil, huma.Error500InternalServerError("failed to delete subscriber")
	}

	h.logger.Info("subscriber deleted", "id", id)
	return nil, nil
}

func subscriberToResponse(s *trigger.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:        s.ID,
		Name:      s.Name,
		Endpoint:  s.Endpoint,
		Topics:    s.Topics,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
	}
}
