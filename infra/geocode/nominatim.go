package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/MakerMama/afterschool-finder/auth"
	"github.com/MakerMama/afterschool-finder/core/model"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap search endpoint.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	// DefaultUserAgent identifies the application to the provider.
	DefaultUserAgent = "AfterSchoolProgramFinder/1.0"
)

// NominatimConfig configures a Nominatim client.
type NominatimConfig struct {
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	Email     string `json:"email"`
	// Auth enables OAuth2 client credentials for gateways that require a
	// bearer token. The public OpenStreetMap service does not.
	Auth auth.Conf `json:"auth"`
}

// Nominatim queries a Nominatim-compatible search API.
type Nominatim struct {
	client    *http.Client
	baseURL   string
	userAgent string
	email     string
	creds     *auth.ClientCred
}

// NewNominatim creates a client. Per-request deadlines come from the caller's
// context; the HTTP client timeout is only a backstop.
func NewNominatim(cfg NominatimConfig) *Nominatim {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	n := &Nominatim{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		email:     cfg.Email,
	}
	if cfg.Auth.Enabled() {
		n.creds = auth.NewClientCred(cfg.Auth)
	}
	return n
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup asks for the single best match of address.
func (n *Nominatim) Lookup(ctx context.Context, address string) (model.Coordinate, bool, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if n.email != "" {
		q.Set("email", n.email)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return model.Coordinate{}, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")
	if n.creds != nil {
		if err := n.creds.SetAuthHeader(req); err != nil {
			return model.Coordinate{}, false, fmt.Errorf("nominatim auth: %w", err)
		}
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return model.Coordinate{}, false, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.Coordinate{}, false, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return model.Coordinate{}, false, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return model.Coordinate{}, false, nil
	}
	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return model.Coordinate{}, false, fmt.Errorf("parse lat %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return model.Coordinate{}, false, fmt.Errorf("parse lon %q: %w", places[0].Lon, err)
	}
	return model.Coordinate{Latitude: lat, Longitude: lon}, true, nil
}
