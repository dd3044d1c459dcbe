package services

import (
	"context"
	"strings"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

type PropertyService struct {
	store repository.Store
}

func NewPropertyService(store repository.Store) *PropertyService {
	return &PropertyService{store: store}
}

// PropertyInput carries the editable listing fields. A nil Available leaves
// the current value (true for new listings).
type PropertyInput struct {
	Title       string
	Description string
	RentPrice   float64
	Location    string
	ImageURL    string
	Available   *bool
	LandlordID  uint // admins only; landlords always own what they create
}

func (in PropertyInput) apply(p *models.Property) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.RentPrice = in.RentPrice
	p.Location = strings.TrimSpace(in.Location)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Available != nil {
		p.Available = *in.Available
	}
}

// PropertyPatch carries a partial listing update. Nil fields keep their
// current values.
type PropertyPatch struct {
	Title       *string
	Description *string
	RentPrice   *float64
	Location    *string
	ImageURL    *string
	Available   *bool
}

func (pt PropertyPatch) apply(p *models.Property) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.Title, pt.Title)
	set(&p.Description, pt.Description)
	set(&p.Location, pt.Location)
	set(&p.ImageURL, pt.ImageURL)
	if pt.RentPrice != nil {
		p.RentPrice = *pt.RentPrice
	}
	if pt.Available != nil {
		p.Available = *pt.Available
	}
}

func (s *PropertyService) Create(ctx context.Context, actor Actor, in PropertyInput) (*models.Property, error) {
	const op = "properties.create"

	if actor.Role != models.RoleLandlord && !actor.IsAdmin() {
		return nil, forbidden(op, "only landlords can list properties")
	}

	p := &models.Property{LandlordID: actor.UserID, Available: true}
	in.apply(p)
	if err := validateListing(op, p); err != nil {
		return nil, err
	}

	if actor.IsAdmin() && in.LandlordID != 0 {
		owner, err := s.store.GetUser(ctx, in.LandlordID)
		if err != nil {
			return nil, storeErr(op, "landlord", err)
		}
		if owner.Role != models.RoleLandlord {
			return nil, validation(op, "landlord_id must reference a landlord")
		}
		p.LandlordID = owner.ID
	}

	if err := s.store.CreateProperty(ctx, p); err != nil {
		return nil, storeErr(op, "property", err)
	}
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	p, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return nil, storeErr("properties.get", "property", err)
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, f repository.PropertyFilter) ([]models.Property, error) {
	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return nil, validation("properties.list", "price filters must not be negative")
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, validation("properties.list", "min_price must not exceed max_price")
	}
	props, err := s.store.ListProperties(ctx, f)
	if err != nil {
		return nil, storeErr("properties.list", "property", err)
	}
	return props, nil
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PropertyPage struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int64             `json:"total_pages"`
}

// Search is List with paging. page starts at 1.
func (s *PropertyService) Search(ctx context.Context, f repository.PropertyFilter, page, size int) (PropertyPage, error) {
	const op = "properties.search"

	if page < 1 {
		return PropertyPage{}, validation(op, "page must be at least 1")
	}
	if size < 1 || size > MaxPageSize {
		return PropertyPage{}, validation(op, "page_size must be between 1 and 100")
	}

	f.Limit, f.Offset = size, (page-1)*size
	props, err := s.List(ctx, f)
	if err != nil {
		return PropertyPage{}, err
	}
	total, err := s.store.CountProperties(ctx, f)
	if err != nil {
		return PropertyPage{}, storeErr(op, "property", err)
	}
	if props == nil {
		props = []models.Property{}
	}
	return PropertyPage{
		Properties: props,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + int64(size) - 1) / int64(size),
	}, nil
}

// Update applies a partial change to a listing and revalidates the result.
func (s *PropertyService) Update(ctx context.Context, actor Actor, id uint, patch PropertyPatch) (*models.Property, error) {
	const op = "properties.update"

	var out *models.Property
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		p, err := tx.LockProperty(ctx, id)
		if err != nil {
			return storeErr(op, "property", err)
		}
		if !actor.Is(p.LandlordID) {
			return forbidden(op, "you can only update your own properties")
		}

		patch.apply(p)
		if err := validateListing(op, p); err != nil {
			return err
		}
		if err := tx.UpdateProperty(ctx, p); err != nil {
			return storeErr(op, "property", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a listing. Properties with booking history are kept.
func (s *PropertyService) Delete(ctx context.Context, actor Actor, id uint) error {
	const op = "properties.delete"

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		p, err := tx.LockProperty(ctx, id)
		if err != nil {
			return storeErr(op, "property", err)
		}
		if !actor.Is(p.LandlordID) {
			return forbidden(op, "you can only delete your own properties")
		}

		n, err := tx.CountPropertyBookings(ctx, id)
		if err != nil {
			return storeErr(op, "property", err)
		}
		if n > 0 {
			return conflict(op, "cannot delete property with existing bookings")
		}
		return storeErr(op, "property", tx.DeleteProperty(ctx, id))
	})
}

type ImageInput struct {
	ImageURL  string
	Caption   string
	IsPrimary bool
	SortOrder int
}

func (s *PropertyService) AddImage(ctx context.Context, actor Actor, propertyID uint, in ImageInput) (*models.PropertyImage, error) {
	const op = "properties.add_image"

	url := strings.TrimSpace(in.ImageURL)
	if url == "" {
		return nil, validation(op, "image_url is required")
	}
	if err := s.ownedBy(ctx, op, actor, propertyID); err != nil {
		return nil, err
	}

	img := &models.PropertyImage{
		PropertyID: propertyID,
		ImageURL:   url,
		Caption:    strings.TrimSpace(in.Caption),
		IsPrimary:  in.IsPrimary,
		SortOrder:  in.SortOrder,
	}
	if err := s.store.CreatePropertyImage(ctx, img); err != nil {
		return nil, storeErr(op, "image", err)
	}
	return img, nil
}

func (s *PropertyService) Images(ctx context.Context, propertyID uint) ([]models.PropertyImage, error) {
	const op = "properties.images"
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return nil, storeErr(op, "property", err)
	}
	imgs, err := s.store.ListPropertyImages(ctx, propertyID)
	if err != nil {
		return nil, storeErr(op, "image", err)
	}
	return imgs, nil
}

type AmenityInput struct {
	Name        string
	Description string
	Included    *bool
}

func (s *PropertyService) AddAmenity(ctx context.Context, actor Actor, propertyID uint, in AmenityInput) (*models.PropertyAmenity, error) {
	const op = "properties.add_amenity"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation(op, "amenity_name is required")
	}
	if err := s.ownedBy(ctx, op, actor, propertyID); err != nil {
		return nil, err
	}

	a := &models.PropertyAmenity{
		PropertyID:  propertyID,
		AmenityName: name,
		Description: strings.TrimSpace(in.Description),
		Included:    in.Included == nil || *in.Included,
	}
	if err := s.store.CreatePropertyAmenity(ctx, a); err != nil {
		return nil, storeErr(op, "amenity", err)
	}
	return a, nil
}

func (s *PropertyService) Amenities(ctx context.Context, propertyID uint) ([]models.PropertyAmenity, error) {
	const op = "properties.amenities"
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return nil, storeErr(op, "property", err)
	}
	as, err := s.store.ListPropertyAmenities(ctx, propertyID)
	if err != nil {
		return nil, storeErr(op, "amenity", err)
	}
	return as, nil
}

func (s *PropertyService) ownedBy(ctx context.Context, op string, actor Actor, propertyID uint) error {
	p, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return storeErr(op, "property", err)
	}
	if !actor.Is(p.LandlordID) {
		return forbidden(op, "you can only manage your own properties")
	}
	return nil
}
