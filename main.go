package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"pokerduel.com/server/game"
	"pokerduel.com/server/logging"
	"pokerduel.com/server/nats"
	"pokerduel.com/server/player"
	"pokerduel.com/server/rest"
	"pokerduel.com/server/util"
)

var mainLogger = logging.GetZeroLogger("main::main", nil)

var gameConfigFile *string

func init() {
	gameConfigFile = flag.String("config", "", "YAML file with match parameters (chips, bets, hands per match)")
}

func main() {
	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	logLevel := util.Env.GetZeroLogLogLevel()
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)

	configFile := *gameConfigFile
	if configFile == "" {
		configFile = util.Env.GetGameConfigFile()
	}
	gameConfig, err := game.ParseGameConfig(configFile)
	if err != nil {
		return errors.Wrap(err, "Error while parsing game config")
	}

	rdclient := redis.NewClient(&redis.Options{
		Addr:     util.Env.GetRedisAddr(),
		Password: util.Env.GetRedisPW(),
		DB:       util.Env.GetRedisDB(),
	})

	var persist game.PersistGameState
	persistMethod := util.Env.GetPersistMethod()
	switch persistMethod {
	case "redis":
		persist = game.NewRedisGameStateTrackerFromClient(rdclient)
	case "memory":
		persist = game.NewMemoryGameStateTracker()
	default:
		return fmt.Errorf("Unknown persist method [%s]", persistMethod)
	}
	mainLogger.Info().Msgf("Using %s persistence", persistMethod)

	var notifier game.Notifier
	turnNotifier, err := nats.NewTurnNotifier(util.Env.GetNatsURL())
	if err != nil {
		// The engine only produces notification data; a missing push
		// channel must not keep games from running.
		mainLogger.Warn().Msgf("NATS unavailable, turn notifications disabled: %v", err)
		notifier = game.NopNotifier{}
	} else {
		defer turnNotifier.Close()
		notifier = turnNotifier
	}

	registry, err := player.NewRegistry(rdclient)
	if err != nil {
		return errors.Wrap(err, "Error while creating player registry")
	}
	availability := player.NewAvailability(rdclient)
	invites := player.NewInvites(rdclient)

	gameManager := game.NewGameManager(gameConfig, persist, notifier)

	port := util.Env.GetPort()
	mainLogger.Info().Msgf("Running the duel server on port %d", port)
	return rest.RunRestServer(port, gameManager, registry, availability, invites)
}
