// Package handler defines HTTP handlers for authenticated ADMIN operations.
// This file implements company management: create, list, fetch and update.
// Companies are the root of the catalog; buses and routes hang off them.
package handler

import (
    "database/sql"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/model"
    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

type companyReq struct {
    Name    string `json:"name"`
    Contact string `json:"contact"`
}

// CreateCompany handles POST /v1/admin/companies. The company name must
// be unique; a duplicate returns 409 Conflict.
func (h *AdminHandler) CreateCompany(c echo.Context) error {
    var req companyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    co := &model.Company{Name: req.Name, Contact: strings.TrimSpace(req.Contact)}
    if err := h.CompanyRepo.Create(c.Request().Context(), co); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "company name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, co)
}

// ListCompanies handles GET /v1/admin/companies.
func (h *AdminHandler) ListCompanies(c echo.Context) error {
    companies, err := h.CompanyRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": companies})
}

// GetCompany handles GET /v1/admin/companies/:id.
func (h *AdminHandler) GetCompany(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    co, err := h.CompanyRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrCompanyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, co)
}

// UpdateCompany handles PUT /v1/admin/companies/:id.
func (h *AdminHandler) UpdateCompany(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req companyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    err = h.CompanyRepo.Update(c.Request().Context(), id, req.Name, strings.TrimSpace(req.Contact))
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "company name already exists"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
