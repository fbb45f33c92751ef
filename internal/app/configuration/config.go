package configuration

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
	"github.com/xinggunghuang/engine-tester/internal/app/enginetester"
)

func NewFromEnv() (enginetester.Config, error) {
	ctx := context.Background()

	var config enginetester.Config
	err := envconfig.Process(ctx, &config)
	if err != nil {
		return config, errors.Wrap(err, "process env config")
	}
	return config, nil
}
