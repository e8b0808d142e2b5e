package queries

import (
	"math"
	"strings"

	"rental-booking/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
	DefaultSort     = SortPickUpTime

	// MaxOffset keeps page*size representable as a bind parameter everywhere.
	MaxOffset = math.MaxInt32
)

var ErrInvalidPageRequest = errs.New("invalid page request")

type SortField string

const (
	SortPickUpTime  SortField = "pickUpTime"
	SortDropOffTime SortField = "dropOffTime"
	SortStatus      SortField = "status"
	SortTotalPrice  SortField = "totalPrice"
	SortCreatedAt   SortField = "createdAt"
	SortID          SortField = "id"
)

// Column returns the reservations column backing the sort field.
func (f SortField) Column() string {
	switch f {
	case SortPickUpTime:
		return "pick_up_time"
	case SortDropOffTime:
		return "drop_off_time"
	case SortStatus:
		return "status"
	case SortTotalPrice:
		return "total_price_cents"
	case SortCreatedAt:
		return "created_at"
	case SortID:
		return "id"
	default:
		return ""
	}
}

type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

type PageRequest struct {
	Page      int
	Size      int
	Sort      SortField
	Direction Direction
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

func (p PageRequest) inRange() bool {
	return p.Page >= 0 && p.Size > 0 && p.Page <= MaxOffset/p.Size
}

// NewPageRequest applies defaults and rejects unknown sort fields or directions.
func NewPageRequest(page, size int, sort, direction string) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, ErrInvalidPageRequest
	}

	req := PageRequest{
		Page:      page,
		Size:      ValidateLimit(size),
		Sort:      DefaultSort,
		Direction: DirectionDesc,
	}
	if !req.inRange() {
		return PageRequest{}, ErrInvalidPageRequest
	}
	if sort != "" {
		req.Sort = SortField(sort)
		if req.Sort.Column() == "" {
			return PageRequest{}, ErrInvalidPageRequest
		}
	}
	switch Direction(strings.ToUpper(direction)) {
	case "":
	case DirectionAsc:
		req.Direction = DirectionAsc
	case DirectionDesc:
		req.Direction = DirectionDesc
	default:
		return PageRequest{}, ErrInvalidPageRequest
	}
	return req, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
