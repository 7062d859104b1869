package main

import (
	"go.uber.org/zap"

	"github.com/codetesla51/flowlimit/audit"
	"github.com/codetesla51/flowlimit/config"
	"github.com/codetesla51/flowlimit/limiter"
	"github.com/codetesla51/flowlimit/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		println("failed to load config:", err.Error())
		return
	}

	s, closeStore, err := buildStore(cfg.Store)
	if err != nil {
		println("failed to build store:", err.Error())
		return
	}
	defer closeStore()

	logger, err := zap.NewProduction()
	if err != nil {
		println("failed to build logger:", err.Error())
		return
	}
	defer logger.Sync()

	fl := limiter.NewFlowLimiter(cfg.Limiter.EpochLength, s,
		limiter.WithListener(audit.NewLogger(logger)))

	for subject, limit := range cfg.Limiter.Limits {
		if err := fl.SetLimit(subject, limit, "config"); err != nil {
			println("failed to set limit for", subject+":", err.Error())
			return
		}
	}

	// Walkthrough: a subject with a net limit of 100 per epoch
	if err := fl.SetLimit("assetA", 100, "demo"); err != nil {
		println("failed to set limit:", err.Error())
		return
	}

	steps := []struct {
		direction string
		amount    uint64
	}{
		{"out", 60},
		{"out", 50},
		{"in", 30},
		{"out", 50},
	}

	for i, step := range steps {
		var err error
		if step.direction == "out" {
			err = fl.RecordOutflow("assetA", step.amount)
		} else {
			err = fl.RecordInflow("assetA", step.amount)
		}
		if err != nil {
			println("step", i+1, step.direction+"flow of", step.amount, "rejected:", err.Error())
		} else {
			println("step", i+1, step.direction+"flow of", step.amount, "admitted")
		}
	}

	out, _ := fl.Outflow("assetA")
	in, _ := fl.Inflow("assetA")
	println("epoch totals for assetA: outflow", out, "inflow", in)
}

func buildStore(cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Type {
	case "redis":
		rs, err := store.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { rs.Close() }, nil
	case "postgres":
		ds, err := store.NewDatabaseStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return ds, func() { ds.Close() }, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
