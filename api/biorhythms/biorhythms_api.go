package biorhythms

import (
	"context"
	"net/url"
	"strconv"

	"biorhythms-server/biorhythm"
	"biorhythms-server/models"
)

// BiorhythmsAPI is a remote biorhythms server.
type BiorhythmsAPI interface {
	GetBirthDate(ctx context.Context) (biorhythm.Date, bool, error)
	SetBirthDate(ctx context.Context, d biorhythm.Date) error
	ClearBirthDate(ctx context.Context) error
	GetReadout(ctx context.Context, q Query) (*models.ReadoutResponse, error)
	GetChart(ctx context.Context, kind string, q Query) ([]byte, error)
}

// Query holds the optional arguments of the readout and chart endpoints.
// Zero values are left for the server to default.
type Query struct {
	Birth  *biorhythm.Date
	Center *biorhythm.Date
	Span   *int
	Width  int
	Height int
}

func (q Query) encode() string {
	v := url.Values{}
	if q.Birth != nil {
		v.Set("birth", q.Birth.String())
	}
	if q.Center != nil {
		v.Set("center", q.Center.String())
	}
	if q.Span != nil {
		v.Set("span", strconv.Itoa(*q.Span))
	}
	if q.Width > 0 {
		v.Set("width", strconv.Itoa(q.Width))
	}
	if q.Height > 0 {
		v.Set("height", strconv.Itoa(q.Height))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
