package crud

import (
	"errors"
	"strconv"
)

var ErrInvalidPage = errors.New("invalid page")

// Page describes one slice of a list, named after what list templates expect.
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	PerPage     int   `json:"per_page"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }

// Paginate resolves the page query parameter. An empty value means the first
// page, "last" the final one; the first page always exists even when empty.
func Paginate(raw string, total int64, perPage int) (Page, error) {
	if perPage <= 0 {
		perPage = 10
	}
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number := 1
	switch raw {
	case "":
	case "last":
		number = numPages
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > numPages {
			return Page{}, ErrInvalidPage
		}
		number = n
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		PerPage:     perPage,
		Count:       total,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}, nil
}
