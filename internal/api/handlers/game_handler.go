package handlers

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/internal/api/presenters"
	"SurePicks-Backend/pkg/game"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GameHandler interface {
		ListPublicGames(c *fiber.Ctx) error
		UploadGame(c *fiber.Ctx) error
		UpdateGame(c *fiber.Ctx) error
		SetMatchStatus(c *fiber.Ctx) error
		ArchiveGame(c *fiber.Ctx) error
		RestoreGame(c *fiber.Ctx) error
		DeleteGame(c *fiber.Ctx) error
		ListGames(c *fiber.Ctx) error
	}

	gameHandler struct {
		gameService game.GameService
		validator   *validator.Validate
	}
)

func NewGameHandler(gameService game.GameService, validator *validator.Validate) GameHandler {
	return &gameHandler{
		gameService: gameService,
		validator:   validator,
	}
}

func (h *gameHandler) ListPublicGames(c *fiber.Ctx) error {
	games, err := h.gameService.ListPublicGames(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetGames, err)
	}

	return presenters.SuccessResponse(c, games, fiber.StatusOK, domain.MessageSuccessGetGames)
}

func (h *gameHandler) UploadGame(c *fiber.Ctx) error {
	req := new(domain.UploadGameRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadGame, err)
	}

	resp, err := h.gameService.UploadGame(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadGame, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessUploadGame)
}

func (h *gameHandler) UpdateGame(c *fiber.Ctx) error {
	req := new(domain.UpdateGameRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGame, err)
	}

	resp, err := h.gameService.UpdateGame(c.Context(), *req)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrGameNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedUpdateGame, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUpdateGame)
}

func (h *gameHandler) SetMatchStatus(c *fiber.Ctx) error {
	req := new(domain.SetMatchStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetMatchStatus, err)
	}

	if err := h.gameService.SetMatchStatus(c.Context(), *req); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrGameNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedSetMatchStatus, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetMatchStatus)
}

func (h *gameHandler) ArchiveGame(c *fiber.Ctx) error {
	req := new(domain.ArchiveGameRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedArchiveGame, err)
	}

	if err := h.gameService.ArchiveGame(c.Context(), req.GameID); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrGameNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedArchiveGame, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessArchiveGame)
}

func (h *gameHandler) RestoreGame(c *fiber.Ctx) error {
	req := new(domain.ArchiveGameRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRestoreGame, err)
	}

	if err := h.gameService.RestoreGame(c.Context(), req.GameID); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrGameNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedRestoreGame, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRestoreGame)
}

func (h *gameHandler) DeleteGame(c *fiber.Ctx) error {
	req := new(domain.ArchiveGameRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteGame, err)
	}

	if err := h.gameService.DeleteGame(c.Context(), req.GameID); err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrGameNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedDeleteGame, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteGame)
}

func (h *gameHandler) ListGames(c *fiber.Ctx) error {
	games, err := h.gameService.ListGames(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetGames, err)
	}

	return presenters.SuccessResponse(c, games, fiber.StatusOK, domain.MessageSuccessGetGames)
}
