package main

import (
	"flag"
	"os"

	"subwaymap.org/internal/appconf"
)

// parseConfig builds the configuration from defaults, an optional YAML file given with -config,
// and command-line flags. Flags set explicitly win over the file.
func parseConfig(args []string) (appconf.Config, error) {
	cfg := appconf.Default()
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to a YAML configuration file")

	var flagCfg appconf.Config
	fs.IntVar(&flagCfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&flagCfg.EnvName, "env", cfg.EnvName, "Environment (development|test|production)")
	fs.IntVar(&flagCfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second per client (0 disables limiting)")
	fs.StringVar(&flagCfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&flagCfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json|text)")
	fs.StringVar(&flagCfg.Store, "store", cfg.Store, "Segment store (sqlite|neo4j)")
	fs.StringVar(&flagCfg.Data.DBPath, "data-path", cfg.Data.DBPath, "Path to the SQLite database, or :memory:")
	fs.StringVar(&flagCfg.Data.NetworkFile, "network-file", "", "YAML network definition imported at startup")
	fs.StringVar(&flagCfg.Data.GtfsFile, "gtfs-file", "", "Static GTFS zip (path or http(s) URL) imported at startup")
	fs.StringVar(&flagCfg.Neo4j.URI, "neo4j-uri", "", "Neo4j bolt URI")
	fs.StringVar(&flagCfg.Neo4j.Database, "neo4j-database", "", "Neo4j database name")
	fs.StringVar(&flagCfg.Neo4j.Username, "neo4j-user", "", "Neo4j user name")
	fs.IntVar(&flagCfg.Neo4j.MaxConnections, "neo4j-max-connections", 0, "Neo4j connection pool size (0 uses the driver default)")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}

	if *configFile != "" {
		fileCfg, err := appconf.LoadFile(*configFile)
		if err != nil {
			return appconf.Config{}, err
		}
		if fileCfg.Neo4j.Password == "" {
			fileCfg.Neo4j.Password = cfg.Neo4j.Password
		}
		cfg = fileCfg
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = flagCfg.Port
		case "env":
			cfg.EnvName = flagCfg.EnvName
		case "rate-limit":
			cfg.RateLimit = flagCfg.RateLimit
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		case "log-format":
			cfg.LogFormat = flagCfg.LogFormat
		case "store":
			cfg.Store = flagCfg.Store
		case "data-path":
			cfg.Data.DBPath = flagCfg.Data.DBPath
		case "network-file":
			cfg.Data.NetworkFile = flagCfg.Data.NetworkFile
		case "gtfs-file":
			cfg.Data.GtfsFile = flagCfg.Data.GtfsFile
		case "neo4j-uri":
			cfg.Neo4j.URI = flagCfg.Neo4j.URI
		case "neo4j-database":
			cfg.Neo4j.Database = flagCfg.Neo4j.Database
		case "neo4j-user":
			cfg.Neo4j.Username = flagCfg.Neo4j.Username
		case "neo4j-max-connections":
			cfg.Neo4j.MaxConnections = flagCfg.Neo4j.MaxConnections
		}
	})

	cfg.Env = appconf.EnvFlagToEnvironment(cfg.EnvName)
	if err := cfg.Validate(); err != nil {
		return appconf.Config{}, err
	}
	return cfg, nil
}
