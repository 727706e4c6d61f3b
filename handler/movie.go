package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"
)

// GetPublicMovies trả về danh sách phim đang chiếu cho client đặt vé.
// Wire shape là mảng JSON trần, cache 60s trên Redis.
func GetPublicMovies(c *fiber.Ctx) error {
	if cached, ok := helper.CacheGet("catalog:movies"); ok {
		c.Set("Content-Type", "application/json")
		return c.Send(cached)
	}

	db := database.DB
	var movies []model.Movie
	if err := db.Where("status = ?", constants.MOVIE_NOW_SHOWING).
		Order("id ASC").Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := make([]model.MovieResponse, 0, len(movies))
	for i := range movies {
		response = append(response, movies[i].ToResponse())
	}

	if payload, err := json.Marshal(response); err == nil {
		helper.CacheSet("catalog:movies", payload)
	}
	return c.JSON(response)
}

// ===== Admin =====

func GetMovies(c *fiber.Ctx) error {
	filterInput, ok := c.Locals("filterInput").(*model.FilterMovieInput)
	if !ok {
		filterInput = new(model.FilterMovieInput)
	}

	db := database.DB
	condition := db.Model(&model.Movie{})
	if filterInput.Title != "" {
		condition = condition.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filterInput.Title)+"%")
	}
	if filterInput.Genre != "" {
		condition = condition.Where("LOWER(genre) LIKE ?", "%"+strings.ToLower(filterInput.Genre)+"%")
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var movies []model.Movie
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	condition.Order("id DESC").Find(&movies)

	response := &model.ResponseCustom{
		Rows:       movies,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetMovieById(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.Preload("Showtimes").First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func CreateMovie(c *fiber.Ctx) error {
	movieInput, ok := c.Locals("movieInput").(*model.MovieInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing movie input"))
	}

	db := database.DB
	releaseDate, _ := time.Parse("2006-01-02", movieInput.ReleaseDate)

	movie := model.Movie{}
	if err := copier.Copy(&movie, movieInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	movie.ReleaseDate = releaseDate
	movie.Slug = helper.GenerateUniqueMovieSlug(db, movieInput.Title)
	if releaseDate.After(time.Now()) {
		movie.Status = constants.MOVIE_COMING_SOON
	} else {
		movie.Status = constants.MOVIE_NOW_SHOWING
	}

	if err := db.Create(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.InvalidateCatalog()
	return utils.SuccessResponse(c, fiber.StatusCreated, movie)
}

func UpdateMovie(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)
	movieInput, ok := c.Locals("movieInput").(*model.MovieInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing movie input"))
	}

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	releaseDate, _ := time.Parse("2006-01-02", movieInput.ReleaseDate)
	retitled := movie.Title != movieInput.Title

	if err := copier.Copy(&movie, movieInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	movie.ReleaseDate = releaseDate
	if retitled {
		movie.Slug = helper.GenerateUniqueMovieSlug(db, movieInput.Title)
	}

	if err := db.Save(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.InvalidateCatalog()
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func DeleteMovie(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Delete(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.InvalidateCatalog()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": movie.ID})
}

// UploadMoviePoster nhận multipart file, đẩy lên Cloudinary rồi lưu URL.
func UploadMoviePoster(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	file, err := c.FormFile("poster")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	url, err := helper.UploadPoster(file, fmt.Sprintf("movie_%d", movie.ID))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.POSTER_UPLOAD_FAILED, err)
	}

	movie.CoverImageUrl = url
	if err := db.Save(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.InvalidateCatalog()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"coverImageUrl": url})
}
