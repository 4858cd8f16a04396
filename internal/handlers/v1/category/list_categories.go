package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
	"github.com/carson-networks/wallet-server/internal/storage/category"
)

// authenticator resolves a bearer access token to the calling user.
type authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*service.User, error)
}

// ListCategoriesInput is the Huma input for listing categories.
type ListCategoriesInput struct {
	Authorization string `header:"Authorization" required:"true" doc:"Bearer access token"`
	Type          string `query:"type" enum:"income,expense" doc:"Restrict to one category type"`
}

// Category is the API response model for a category.
type Category struct {
	ID   string `json:"id" doc:"Category UUID"`
	Name string `json:"name" doc:"Category name"`
	Type string `json:"type" doc:"income or expense"`
}

// ListCategoriesResponseBody is the response body for listing categories.
type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"Categories sorted by name"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

// categoryLister is the interface for listing categories.
type categoryLister interface {
	ListCategories(ctx context.Context, typeFilter *category.Type) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	Auth            authenticator
	CategoryService categoryLister
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(auth authenticator, svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{Auth: auth, CategoryService: svc}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Description: "Returns the shared category catalog, optionally restricted to one type.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	logData := logging.GetLogData(ctx)

	if _, err := h.Auth.Authenticate(ctx, input.Authorization); err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authorized")
	}

	var typeFilter *category.Type
	if input.Type != "" {
		categoryType := category.Type(input.Type)
		if !categoryType.Valid() {
			return nil, huma.NewError(http.StatusBadRequest, "type must be income or expense")
		}
		typeFilter = &categoryType
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listCategoriesMs")
	}
	categories, err := h.CategoryService.ListCategories(ctx, typeFilter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list categories", err)
	}

	resp := ListCategoriesResponseBody{
		Categories: make([]Category, len(categories)),
	}
	for i, row := range categories {
		resp.Categories[i] = Category{
			ID:   row.ID.String(),
			Name: row.Name,
			Type: string(row.Type),
		}
	}

	return &ListCategoriesOutput{Body: resp}, nil
}
