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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/edtadros/BND-Project1/api/rest"
	"github.com/edtadros/BND-Project1/codec/zbor"
	"github.com/edtadros/BND-Project1/service/chain"
	"github.com/edtadros/BND-Project1/service/verifier"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagLevel string
		flagPort  uint16
	)

	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.Uint16VarP(&flagPort, "port", "p", 8000, "port to host registry API on")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)
	elog := lecho.From(log)

	// Initialize the payload codec.
	codec, err := zbor.NewCodec()
	if err != nil {
		log.Error().Err(err).Msg("could not initialize payload codec")
		return failure
	}

	// Initialize the registry chain with its genesis block.
	verify := verifier.New()
	registry, err := chain.New(log, codec, verify)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize registry chain")
		return failure
	}

	// REST API initialization.
	ctrl := rest.NewController(registry)

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	server.GET("/block/height/:height", ctrl.GetBlockByHeight)
	server.GET("/block/hash/:hash", ctrl.GetBlockByHash)
	server.POST("/requestValidation", ctrl.RequestValidation)
	server.POST("/submitstar", ctrl.SubmitStar)
	server.GET("/blocks/:address", ctrl.GetStarsByOwner)
	server.GET("/validate", ctrl.ValidateChain)

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Msg("Star Registry Server starting")
		err := server.Start(fmt.Sprint(":", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("Star Registry Server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("Star Registry Server stopped")
	}()

	select {
	case <-sig:
		log.Info().Msg("Star Registry Server stopping")
	case <-done:
		log.Info().Msg("Star Registry Server done")
	case <-failed:
		log.Warn().Msg("Star Registry Server aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down server gracefully")
		return failure
	}

	return success
}
