package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/newsdesk-api/internal/config"
	"github.com/newsdesk-api/internal/models"
	"github.com/rs/zerolog"
)

var weatherConditions = []string{"Sunny", "Partly cloudy", "Cloudy", "Light rain", "Showers", "Clear"}

// widgetService proxies third-party weather and stock APIs. When an API
// key is not configured the corresponding widget serves deterministic
// mock data derived from the request input.
type widgetService struct {
	cfg    *config.WidgetConfig
	client *http.Client
	log    zerolog.Logger
}

func newWidgetService(cfg *config.WidgetConfig, log zerolog.Logger) *widgetService {
	return &widgetService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("service", "widget").Logger(),
	}
}

// Weather returns current conditions for a city
func (s *widgetService) Weather(ctx context.Context, city string) (*models.WeatherReport, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidArgument)
	}

	if s.cfg.WeatherAPIKey == "" {
		return mockWeather(city), nil
	}

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s",
		s.cfg.WeatherBaseURL, s.cfg.WeatherAPIKey, url.QueryEscape(city))

	var payload struct {
		Current struct {
			TempC     float64 `json:"temp_c"`
			Humidity  int     `json:"humidity"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := s.fetchJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	return &models.WeatherReport{
		City:       city,
		TempC:      payload.Current.TempC,
		Condition:  payload.Current.Condition.Text,
		HumidityPC: payload.Current.Humidity,
		Source:     "live",
	}, nil
}

// Stocks returns quotes for the given symbols
func (s *widgetService) Stocks(ctx context.Context, symbols []string) ([]*models.StockQuote, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one symbol is required", ErrInvalidArgument)
	}

	quotes := make([]*models.StockQuote, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		if s.cfg.StockAPIKey == "" {
			quotes = append(quotes, mockQuote(symbol))
			continue
		}

		quote, err := s.fetchQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (s *widgetService) fetchQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	endpoint := fmt.Sprintf("%s?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		s.cfg.StockBaseURL, url.QueryEscape(symbol), s.cfg.StockAPIKey)

	var payload struct {
		GlobalQuote struct {
			Price     string `json:"05. price"`
			ChangePct string `json:"10. change percent"`
		} `json:"Global Quote"`
	}
	if err := s.fetchJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	price, _ := strconv.ParseFloat(payload.GlobalQuote.Price, 64)
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(payload.GlobalQuote.ChangePct, "%"), 64)

	return &models.StockQuote{
		Symbol:    symbol,
		Price:     price,
		ChangePct: changePct,
		Source:    "live",
	}, nil
}

func (s *widgetService) fetchJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Msg("Widget upstream request failed")
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn().Int("status", resp.StatusCode).Msg("Widget upstream returned non-200")
		return fmt.Errorf("%w: upstream status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding upstream response: %v", ErrUpstream, err)
	}
	return nil
}

// mockWeather derives stable fake conditions from the city name so the
// widget renders consistently without an API key.
func mockWeather(city string) *models.WeatherReport {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(city)))
	seed := h.Sum32()

	return &models.WeatherReport{
		City:       city,
		TempC:      float64(int(seed%35)) - 5,
		Condition:  weatherConditions[seed%uint32(len(weatherConditions))],
		HumidityPC: int(30 + seed%60),
		Source:     "mock",
	}
}

// mockQuote derives a stable fake quote from the symbol
func mockQuote(symbol string) *models.StockQuote {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := h.Sum32()

	return &models.StockQuote{
		Symbol:    symbol,
		Price:     float64(10+seed%990) + float64(seed%100)/100,
		ChangePct: float64(int(seed%600))/100 - 3,
		Source:    "mock",
	}
}
