package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ignatzorin/ravd-cli/internal/logger"
)

// UnknownLocation подставляется всегда, когда цепочку определения места
// не удалось пройти до конца. Поле места никогда не остаётся пустым.
const UnknownLocation = "Unknown location"

// Resolver определяет человекочитаемое место по сетевому адресу клиента:
// сначала внешний сервис сообщает публичный IP, затем второй сервис
// возвращает географию этого IP.
type Resolver struct {
	ipURL      string
	geoBaseURL string
	httpClient *http.Client
}

// NewResolver создаёт резолвер. geoBaseURL — базовый адрес сервиса
// геолокации, к которому дописывается /{ip}/json/.
func NewResolver(ipURL, geoBaseURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		ipURL:      ipURL,
		geoBaseURL: strings.TrimRight(geoBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ipResponse struct {
	IP string `json:"ip"`
}

type geoResponse struct {
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Resolve возвращает строку места. Ошибки не покидают резолвер: любой сбой
// на любом шаге деградирует до фиксированной заглушки.
func (r *Resolver) Resolve(ctx context.Context) string {
	var ip ipResponse
	if err := r.getJSON(ctx, r.ipURL, &ip); err != nil || ip.IP == "" {
		if err != nil {
			logger.L().WithField("error", err.Error()).Debug("geo: не удалось определить IP")
		}
		return UnknownLocation
	}

	var geo geoResponse
	if err := r.getJSON(ctx, fmt.Sprintf("%s/%s/json/", r.geoBaseURL, ip.IP), &geo); err != nil {
		logger.L().WithField("error", err.Error()).Debug("geo: не удалось определить географию IP")
		return UnknownLocation
	}

	return formatLocation(geo)
}

func (r *Resolver) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("geo: неожиданный статус %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// formatLocation собирает строку вида "Город, Регион, Страна (lat, lon)".
// Координаты округляются до трёх знаков после запятой.
func formatLocation(g geoResponse) string {
	var parts []string
	for _, p := range []string{g.City, g.Region, g.CountryName} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return UnknownLocation
	}
	return fmt.Sprintf("%s (%.3f, %.3f)", strings.Join(parts, ", "), g.Latitude, g.Longitude)
}
