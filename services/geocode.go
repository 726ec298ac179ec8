package services

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"

	"github.com/goccy/go-json"
)

type GeocodingFeature struct {
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"`
	Relevance float64    `json:"relevance"`
}

type GeocodingResponse struct {
	Features []GeocodingFeature `json:"features"`
}

func GetBestCoordinatesFromResponse(body io.Reader) (float64, float64, error) {
	var response GeocodingResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Features) == 0 {
		return 0, 0, errors.New("no results found")
	}

	// Chọn kết quả có relevance cao nhất
	bestFeature := response.Features[0]
	for _, feature := range response.Features {
		if feature.Relevance > bestFeature.Relevance {
			bestFeature = feature
		}
	}

	return bestFeature.Center[0], bestFeature.Center[1], nil
}

func mapboxBaseURL() string {
	if base := os.Getenv("MAPBOX_BASE_URL"); base != "" {
		return base
	}
	return "https://api.mapbox.com"
}

// GetCoordinatesFromAddress gọi Mapbox và lấy tọa độ (lon, lat) của một địa chỉ.
func GetCoordinatesFromAddress(address string) (float64, float64, error) {
	encodedAddress := url.QueryEscape(address)
	apiURL := fmt.Sprintf(
		"%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&country=VN",
		mapboxBaseURL(),
		encodedAddress,
		os.Getenv("MAPBOX_ACCESS_TOKEN"),
	)

	resp, err := http.Get(apiURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return GetBestCoordinatesFromResponse(resp.Body)
}

// HaversineKm tính khoảng cách (km) giữa hai tọa độ theo công thức haversine.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceFromReference geocode địa chỉ bài đăng và điểm tham chiếu rồi trả về
// khoảng cách km giữa hai nơi.
func DistanceFromReference(address, reference string) (float64, error) {
	lon1, lat1, err := GetCoordinatesFromAddress(address)
	if err != nil {
		return 0, err
	}

	lon2, lat2, err := GetCoordinatesFromAddress(reference)
	if err != nil {
		return 0, err
	}

	return HaversineKm(lat1, lon1, lat2, lon2), nil
}
