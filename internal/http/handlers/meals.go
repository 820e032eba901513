package handlers

import (
	"net/http"
	"strconv"

	"busreserve/internal/domain/models"
	"busreserve/internal/services"

	"github.com/gin-gonic/gin"
)

func mealService() services.MealService {
	return services.MealService{}
}

func GetMeals(c *gin.Context) {
	meals, err := mealService().ListAvailable()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetMealsByCategory(c *gin.Context) {
	meals, err := mealService().ListByCategory(c.Param("category"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

type createMealPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
}

func CreateMeal(c *gin.Context) {
	var payload createMealPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	meal, err := mealService().Create(models.Meal{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

type mealAvailabilityPayload struct {
	Available bool `json:"is_available"`
}

func UpdateMealAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_meal_id", "meal id is not valid", nil)
		return
	}
	var payload mealAvailabilityPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	meal, err := mealService().SetAvailability(id, payload.Available)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
