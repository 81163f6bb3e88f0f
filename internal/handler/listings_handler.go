package handler

import (
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/service"
)

const imageFormField = "image"

// ListingsHandler exposes listing CRUD and search endpoints.
type ListingsHandler struct {
	listings *service.ListingsService
}

// NewListingsHandler constructs a handler instance.
func NewListingsHandler(listings *service.ListingsService) *ListingsHandler {
	return &ListingsHandler{listings: listings}
}

// List handles GET /api/listings.
func (h *ListingsHandler) List(c echo.Context) error {
	page, perPage := service.Paging(
		parseIntDefault(c.QueryParam("page"), 1),
		parseIntDefault(c.QueryParam("per_page"), 20),
	)

	records, err := h.listings.List(c.Request().Context(), page, perPage)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to fetch listings")
	}

	return SuccessWithMeta(c, http.StatusOK, "listings retrieved", records, Meta{
		Page:    page,
		PerPage: perPage,
		Count:   len(records),
	})
}

// Get handles GET /api/listings/:id.
func (h *ListingsHandler) Get(c echo.Context) error {
	listing, err := h.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch listing")
	}
	return Success(c, http.StatusOK, "listing retrieved", listing)
}

// Search handles GET /api/listings/search.
func (h *ListingsHandler) Search(c echo.Context) error {
	resp, err := h.listings.Search(c.Request().Context(), dto.SearchParams{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Range:    c.QueryParam("range"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return respondError(c, err, "failed to search listings")
	}
	return SuccessWithMeta(c, http.StatusOK, "listings retrieved", resp, searchMeta(resp.Count, resp.Cached))
}

// Create handles POST /api/listings. Multipart forms may carry image files;
// JSON bodies create a listing without images.
func (h *ListingsHandler) Create(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	var (
		req    dto.CreateListingRequest
		images []dto.ImageUpload
	)
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid multipart form")
		}
		if req, err = createListingFromForm(form); err != nil {
			return respondError(c, err, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return respondError(c, err, "invalid payload")
		}
		images = imagesFromForm(form)
	} else if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	listing, err := h.listings.Create(c.Request().Context(), actor, req, images)
	if err != nil {
		return respondError(c, err, "failed to create listing")
	}
	return Success(c, http.StatusCreated, "listing created", listing)
}

// Update handles PUT /api/listings/:id.
func (h *ListingsHandler) Update(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	var (
		req    dto.UpdateListingRequest
		images []dto.ImageUpload
	)
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid multipart form")
		}
		if req, err = updateListingFromForm(form); err != nil {
			return respondError(c, err, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return respondError(c, err, "invalid payload")
		}
		images = imagesFromForm(form)
	} else if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	listing, err := h.listings.Update(c.Request().Context(), actor, c.Param("id"), req, images)
	if err != nil {
		return respondError(c, err, "failed to update listing")
	}
	return Success(c, http.StatusOK, "listing updated", listing)
}

// Delete handles DELETE /api/listings/:id.
func (h *ListingsHandler) Delete(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.listings.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete listing")
	}
	return Success(c, http.StatusOK, "listing deleted", nil)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func createListingFromForm(form *multipart.Form) (dto.CreateListingRequest, error) {
	var err error
	req := dto.CreateListingRequest{
		Title:        formValue(form, "title"),
		Description:  formValue(form, "description"),
		Address:      formValue(form, "address"),
		City:         formValue(form, "city"),
		District:     formValue(form, "district"),
		Zipcode:      formValue(form, "zipcode"),
		Location:     formValue(form, "location"),
		Locality:     formValue(form, "locality"),
		PropertyType: formValue(form, "property_type"),
		BHKType:      formValue(form, "bhk_type"),
		Amenities:    formList(form, "amenities"),
	}

	rent, err := requiredFloat(form, "rent")
	if err != nil {
		return req, err
	}
	req.Rent = rent

	bedrooms, err := formInt(form, "bedrooms")
	if err != nil {
		return req, err
	}
	if bedrooms == nil {
		return req, &FieldValidationError{Field: "bedrooms", Message: "bedrooms is a required field"}
	}
	req.Bedrooms = *bedrooms

	if req.AreaSqft, err = formFloat(form, "area_sqft"); err != nil {
		return req, err
	}
	if req.Deposit, err = formFloat(form, "deposit"); err != nil {
		return req, err
	}
	if req.AllowBroker, err = formBool(form, "allow_broker"); err != nil {
		return req, err
	}
	return req, nil
}

func updateListingFromForm(form *multipart.Form) (dto.UpdateListingRequest, error) {
	var err error
	req := dto.UpdateListingRequest{
		Title:        formString(form, "title"),
		Description:  formString(form, "description"),
		Address:      formString(form, "address"),
		City:         formString(form, "city"),
		District:     formString(form, "district"),
		Zipcode:      formString(form, "zipcode"),
		Location:     formString(form, "location"),
		Locality:     formString(form, "locality"),
		PropertyType: formString(form, "property_type"),
		BHKType:      formString(form, "bhk_type"),
		Amenities:    formList(form, "amenities"),
	}

	if req.Rent, err = formFloat(form, "rent"); err != nil {
		return req, err
	}
	if req.Bedrooms, err = formInt(form, "bedrooms"); err != nil {
		return req, err
	}
	if req.AreaSqft, err = formFloat(form, "area_sqft"); err != nil {
		return req, err
	}
	if req.Deposit, err = formFloat(form, "deposit"); err != nil {
		return req, err
	}
	if req.AllowBroker, err = formBool(form, "allow_broker"); err != nil {
		return req, err
	}
	return req, nil
}

func imagesFromForm(form *multipart.Form) []dto.ImageUpload {
	headers := form.File[imageFormField]
	images := make([]dto.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		images = append(images, dto.ImageUpload{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return images
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// formString distinguishes an absent field (nil) from one sent empty.
func formString(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := strings.TrimSpace(values[0])
	return &value
}

// formList accepts repeated fields as well as a single comma separated value.
func formList(form *multipart.Form, key string) []string {
	var out []string
	for _, raw := range form.Value[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func formFloat(form *multipart.Form, key string) (*float64, error) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &FieldValidationError{Field: key, Message: key + " must be a finite number"}
	}
	return &value, nil
}

func requiredFloat(form *multipart.Form, key string) (float64, error) {
	value, err := formFloat(form, key)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, &FieldValidationError{Field: key, Message: key + " is a required field"}
	}
	return *value, nil
}

func formInt(form *multipart.Form, key string) (*int, error) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &FieldValidationError{Field: key, Message: key + " must be an integer"}
	}
	return &value, nil
}

func formBool(form *multipart.Form, key string) (*bool, error) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &FieldValidationError{Field: key, Message: key + " must be true or false"}
	}
	return &value, nil
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
