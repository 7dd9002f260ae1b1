package handler

import (
	"net/http"
	"strconv"
)

// Weather serves current weather, either for every configured city, for a
// named city, or for the city nearest a coordinate pair.
// GET /api/widgets/weather?city=Brașov
// GET /api/widgets/weather?lat=45.65&lon=25.61
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if city := q.Get("city"); city != "" {
		report, ok := h.widgets.WeatherFor(city)
		if !ok {
			h.writeError(w, http.StatusNotFound, "nu există date meteo pentru acest oraș")
			return
		}
		h.writeJSON(w, http.StatusOK, report)
		return
	}

	if q.Has("lat") || q.Has("lon") {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
		if errLat != nil || errLon != nil {
			h.writeError(w, http.StatusBadRequest, "coordonate invalide")
			return
		}
		report, ok := h.widgets.NearestWeather(lat, lon)
		if !ok {
			h.writeError(w, http.StatusNotFound, "nu există date meteo disponibile")
			return
		}
		h.writeJSON(w, http.StatusOK, report)
		return
	}

	reports := h.widgets.AllWeather()
	if reports == nil {
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, reports)
}

// Fuel serves the current national fuel price snapshot.
// GET /api/widgets/fuel
func (h *Handler) Fuel(w http.ResponseWriter, r *http.Request) {
	prices, ok := h.widgets.FuelPrices()
	if !ok {
		h.writeError(w, http.StatusNotFound, "prețurile carburanților nu sunt disponibile")
		return
	}
	h.writeJSON(w, http.StatusOK, prices)
}

// Roads serves the current road alerts.
// GET /api/widgets/roads
func (h *Handler) Roads(w http.ResponseWriter, r *http.Request) {
	alerts := h.widgets.RoadAlerts()
	if len(alerts) == 0 {
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, alerts)
}
