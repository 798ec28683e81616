package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vaultkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/vaultkeeper/internal/cli"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/vaultkeeper/internal/services"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error opening %s storage: %v", cfg.Backend, err)
	}

	key := cryptox.DeriveMasterKey([]byte(cfg.Passphrase), []byte(cfg.KeySalt))
	cipher, err := cryptox.NewCipher(key, nil)
	common.WipeByteArray(key)
	if err != nil {
		_ = repos.Close(ctx)
		log.Fatalf("%v", err)
	}

	auth := services.NewAuthService(repos.Users(), nil, logger)
	store := services.NewCredentialStore(repos.Credentials(), cipher, nil, cfg.PasswordLength, logger)

	app := cli.NewApp(auth, store, os.Stdin, os.Stdout, logger)
	app.Run(ctx)

	if err := repos.Close(ctx); err != nil {
		logger.Warn(ctx, "closing storage", "error", err)
	}
}
