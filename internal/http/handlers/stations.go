package handlers

import (
	"net/http"
	"strconv"

	"busreserve/internal/domain/models"
	"busreserve/internal/http/middleware"
	"busreserve/internal/services"
	"busreserve/internal/utils"

	"github.com/gin-gonic/gin"
)

func routeService() services.RouteService {
	return services.RouteService{}
}

// GetStations returns the fixed route in sequence order.
func GetStations(c *gin.Context) {
	stations, err := routeService().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	route := ""
	if len(stations) > 1 {
		route = stations[0].Name + " -> " + stations[len(stations)-1].Name
	}
	c.JSON(http.StatusOK, gin.H{
		"route":    route,
		"stations": stations,
	})
}

func GetStationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_station_id", "station id is not valid", nil)
		return
	}
	station, err := routeService().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}

type createStationPayload struct {
	Name          string `json:"name"`
	Sequence      int    `json:"sequence"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	DistanceKm    int    `json:"distance_km"`
}

// CreateStation adds a stop at setup time.
func CreateStation(c *gin.Context) {
	var payload createStationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	station, err := routeService().Create(models.Station{
		Name:          payload.Name,
		Sequence:      payload.Sequence,
		ArrivalTime:   payload.ArrivalTime,
		DepartureTime: payload.DepartureTime,
		DistanceKm:    payload.DistanceKm,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "station", "create", "name="+station.Name)
	c.JSON(http.StatusCreated, station)
}
