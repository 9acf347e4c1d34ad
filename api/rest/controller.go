// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package rest exposes the registry chain over HTTP. It only shapes requests
// and responses; every decision about the ledger itself stays behind the
// ledger.Chain interface.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/edtadros/BND-Project1/models/ledger"
)

type Controller struct {
	chain    ledger.Chain
	validate *validator.Validate
}

func NewController(chain ledger.Chain) *Controller {

	c := Controller{
		chain:    chain,
		validate: validator.New(),
	}

	return &c
}

func (c *Controller) GetBlockByHeight(ctx echo.Context) error {

	height, err := strconv.ParseUint(ctx.Param("height"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	block, err := c.chain.ByHeight(height)
	if errors.Is(err, ledger.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return ctx.JSON(http.StatusOK, block)
}

func (c *Controller) GetBlockByHash(ctx echo.Context) error {

	block, err := c.chain.ByHash(ctx.Param("hash"))
	if errors.Is(err, ledger.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return ctx.JSON(http.StatusOK, block)
}

func (c *Controller) RequestValidation(ctx echo.Context) error {

	var req ValidationRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	res := ValidationResponse{
		Address: req.Address,
		Message: c.chain.RequestChallenge(req.Address),
	}

	return ctx.JSON(http.StatusOK, res)
}

func (c *Controller) SubmitStar(ctx echo.Context) error {

	var req SubmitRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	block, err := c.chain.SubmitRecord(req.Address, req.Message, req.Signature, req.Star)
	if errors.Is(err, ledger.ErrChallengeExpired) || errors.Is(err, ledger.ErrInvalidSignature) {
		return echo.NewHTTPError(http.StatusUnauthorized, err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return ctx.JSON(http.StatusCreated, block)
}

func (c *Controller) GetStarsByOwner(ctx echo.Context) error {

	records, err := c.chain.RecordsByOwner(ctx.Param("address"))
	if errors.Is(err, ledger.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	stars := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		stars = append(stars, json.RawMessage(record))
	}

	return ctx.JSON(http.StatusOK, stars)
}

func (c *Controller) ValidateChain(ctx echo.Context) error {

	vErrs := c.chain.Validate()
	if vErrs == nil {
		vErrs = []ledger.ValidationError{}
	}

	res := ValidateResponse{
		Errors: vErrs,
	}

	return ctx.JSON(http.StatusOK, res)
}
