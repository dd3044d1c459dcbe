package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/repository"
	"github.com/sidhant-sriv/rentease-api/services"
)

// PropertyRoutes sets up the listing routes. Reads are public; writes need
// a token.
func PropertyRoutes(router *gin.Engine, props *services.PropertyService, reviews *services.ReviewService, auth gin.HandlerFunc) {
	propertyRoutes := router.Group("/properties")
	{
		propertyRoutes.GET("", SearchProperties(props))
		propertyRoutes.GET("/:id", GetProperty(props))
		propertyRoutes.GET("/:id/images", GetPropertyImages(props))
		propertyRoutes.GET("/:id/amenities", GetPropertyAmenities(props))
		propertyRoutes.GET("/:id/reviews", GetPropertyReviews(reviews))

		propertyRoutes.POST("", auth, CreateProperty(props))
		propertyRoutes.PUT("/:id", auth, UpdateProperty(props))
		propertyRoutes.DELETE("/:id", auth, DeleteProperty(props))
		propertyRoutes.POST("/:id/images", auth, AddPropertyImage(props))
		propertyRoutes.POST("/:id/amenities", auth, AddPropertyAmenity(props))
	}
}

type propertyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RentPrice   float64 `json:"rent_price"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"image_url"`
	Available   *bool   `json:"available"`
	LandlordID  uint    `json:"landlord_id"`
}

func (r propertyRequest) input() services.PropertyInput {
	return services.PropertyInput{
		Title:       r.Title,
		Description: r.Description,
		RentPrice:   r.RentPrice,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
		LandlordID:  r.LandlordID,
	}
}

// propertyPatchRequest is the body of PUT /properties/:id; omitted fields
// are left unchanged.
type propertyPatchRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	RentPrice   *float64 `json:"rent_price"`
	Location    *string  `json:"location"`
	ImageURL    *string  `json:"image_url"`
	Available   *bool    `json:"available"`
}

func (r propertyPatchRequest) patch() services.PropertyPatch {
	return services.PropertyPatch{
		Title:       r.Title,
		Description: r.Description,
		RentPrice:   r.RentPrice,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
	}
}

// propertyFilter reads the listing filters from the query string.
func propertyFilter(c *gin.Context) (repository.PropertyFilter, bool) {
	var f repository.PropertyFilter
	var ok bool

	if f.LandlordID, ok = uintQuery(c, "landlord_id"); !ok {
		return f, false
	}
	if f.MinPrice, ok = floatQuery(c, "min_price"); !ok {
		return f, false
	}
	if f.MaxPrice, ok = floatQuery(c, "max_price"); !ok {
		return f, false
	}
	if raw := c.Query("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "Invalid available parameter")
			return f, false
		}
		f.Available = &v
	}
	f.Location = c.Query("location")
	return f, true
}

// SearchProperties lists properties with filters and pagination.
func SearchProperties(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := propertyFilter(c)
		if !ok {
			return
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil {
			badRequest(c, "Invalid page parameter")
			return
		}
		pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(services.DefaultPageSize)))
		if err != nil {
			badRequest(c, "Invalid page_size parameter (must be 1-100)")
			return
		}

		result, err := props.Search(c.Request.Context(), f, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetProperty retrieves a property with its images and amenities.
func GetProperty(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		p, err := props.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"property": p})
	}
}

// CreateProperty lists a new property owned by the caller.
func CreateProperty(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req propertyRequest
		if !bindJSON(c, &req) {
			return
		}
		p, err := props.Create(c.Request.Context(), middleware.GetActor(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"property": p})
	}
}

// UpdateProperty replaces the editable fields of a property.
func UpdateProperty(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req propertyPatchRequest
		if !bindJSON(c, &req) {
			return
		}
		p, err := props.Update(c.Request.Context(), middleware.GetActor(c), id, req.patch())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"property": p})
	}
}

// DeleteProperty removes a property that has never been booked.
func DeleteProperty(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := props.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
	}
}

func GetPropertyImages(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		imgs, err := props.Images(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"images": imgs})
	}
}

func AddPropertyImage(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			ImageURL  string `json:"image_url"`
			Caption   string `json:"caption"`
			IsPrimary bool   `json:"is_primary"`
			SortOrder int    `json:"sort_order"`
		}
		if !bindJSON(c, &req) {
			return
		}

		img, err := props.AddImage(c.Request.Context(), middleware.GetActor(c), id, services.ImageInput{
			ImageURL: req.ImageURL, Caption: req.Caption, IsPrimary: req.IsPrimary, SortOrder: req.SortOrder,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"image": img})
	}
}

func GetPropertyAmenities(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		amenities, err := props.Amenities(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"amenities": amenities})
	}
}

func AddPropertyAmenity(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			AmenityName string `json:"amenity_name"`
			Description string `json:"description"`
			Included    *bool  `json:"included"`
		}
		if !bindJSON(c, &req) {
			return
		}

		a, err := props.AddAmenity(c.Request.Context(), middleware.GetActor(c), id, services.AmenityInput{
			Name: req.AmenityName, Description: req.Description, Included: req.Included,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"amenity": a})
	}
}

// GetPropertyReviews lists the approved reviews of a property.
func GetPropertyReviews(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		rs, err := reviews.ListForProperty(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": rs})
	}
}
