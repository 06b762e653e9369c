package biorhythms

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"biorhythms-server/api"
	"biorhythms-server/biorhythm"
	"biorhythms-server/models"
)

// Chart kinds accepted by GetChart.
const (
	CHART_PNG  = "png"
	CHART_SVG  = "svg"
	CHART_HTML = "html"
	CHART_OPS  = "ops"
)

// BiorhythmsApiClient embeds the common HTTPClient
type BiorhythmsApiClient struct {
	*api.HTTPClient
}

// NewBiorhythmsApiClient creates a new instance of BiorhythmsApiClient
func NewBiorhythmsApiClient(httpClient *api.HTTPClient) *BiorhythmsApiClient {
	return &BiorhythmsApiClient{
		HTTPClient: httpClient,
	}
}

// GetBirthDate returns ok=false when the server has none stored.
func (c *BiorhythmsApiClient) GetBirthDate(ctx context.Context) (biorhythm.Date, bool, error) {
	var response models.BirthDateResponse
	err := c.Request(ctx, http.MethodGet, "/v1/birthdate", nil, &response)
	if isNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return response.BirthDate, true, nil
}

func (c *BiorhythmsApiClient) SetBirthDate(ctx context.Context, d biorhythm.Date) error {
	return c.Request(ctx, http.MethodPut, "/v1/birthdate", models.BirthDateRequest{BirthDate: &d}, nil)
}

func (c *BiorhythmsApiClient) ClearBirthDate(ctx context.Context) error {
	return c.Request(ctx, http.MethodDelete, "/v1/birthdate", nil, nil)
}

func (c *BiorhythmsApiClient) GetReadout(ctx context.Context, q Query) (*models.ReadoutResponse, error) {
	var response models.ReadoutResponse
	if err := c.Request(ctx, http.MethodGet, "/v1/readout"+q.encode(), nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetChart downloads a rendered chart. kind is one of the CHART_* constants.
func (c *BiorhythmsApiClient) GetChart(ctx context.Context, kind string, q Query) ([]byte, error) {
	var endpoint string
	switch kind {
	case CHART_PNG, CHART_SVG, CHART_HTML:
		endpoint = "/v1/chart." + kind
	case CHART_OPS:
		endpoint = "/v1/chart/ops"
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", kind)
	}
	return c.RequestRaw(ctx, endpoint+q.encode())
}

func isNotFound(err error) bool {
	var se *api.StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
