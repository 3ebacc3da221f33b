//go:build js && wasm

// Command wasm runs the extractor page controller in the browser.
// Build with GOOS=js GOARCH=wasm and load it from the index page.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/dtnitsch/product-extractor/internal/browser"
	"github.com/dtnitsch/product-extractor/models"
	"github.com/dtnitsch/product-extractor/pkg/apiclient"
	"github.com/dtnitsch/product-extractor/pkg/controller"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// The page is served by the extraction service, so requests go to its
	// own origin unless the page says otherwise.
	server := js.Global().Get("location").Get("origin").String()
	if override := js.Global().Get("EXTRACTOR_SERVER"); override.Truthy() {
		server = override.String()
	}

	client, err := apiclient.NewClient(server, models.DefaultTimeout)
	if err != nil {
		logger.Error("invalid server url", "server", server, "error", err)
		return
	}
	view, err := browser.NewView()
	if err != nil {
		logger.Error("page not ready", "error", err)
		return
	}
	defer view.Release()

	ctx := context.Background()
	ctrl := controller.New(view, client, controller.Options{Logger: logger})
	ctrl.Attach(ctx)
	go ctrl.RefreshHistory(ctx)

	select {}
}
