// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/temper/internal/adapters/cas"
	_ "go.trai.ch/temper/internal/adapters/config"
	_ "go.trai.ch/temper/internal/adapters/cpu/compiler"
	_ "go.trai.ch/temper/internal/adapters/cpu/inference"
	_ "go.trai.ch/temper/internal/adapters/device"
	_ "go.trai.ch/temper/internal/adapters/fingerprint"
	_ "go.trai.ch/temper/internal/adapters/logger"
	_ "go.trai.ch/temper/internal/adapters/metrics"
	_ "go.trai.ch/temper/internal/adapters/model"
	_ "go.trai.ch/temper/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/temper/internal/app"
	_ "go.trai.ch/temper/internal/engine/builder"
)
