package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/portive/upload-auth/config"
)

func main() {
	var (
		configFile string
		addr       string
		debug      bool

		cert    string
		certKey string
	)

	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file")
	flag.StringVar(&addr, "addr", "localhost:8080", "Address to listen on")
	flag.BoolVar(&debug, "debug", false, "Debug mode")

	flag.StringVar(&cert, "tlscert", "", "Certificate file for TLS")
	flag.StringVar(&certKey, "tlskey", "", "Certificate key for TLS")

	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	if debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	}

	defer logger.Sync()

	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Sugar().Fatalf("Error loading config file %s: %v", configFile, err)
	}

	err = cfg.Validate()
	if err != nil {
		logger.Sugar().Fatalf("Invalid configuration: %v", err)
	}

	server, err := cfg.CreateTokenServer(logger)
	if err != nil {
		logger.Sugar().Fatalf("Error creating token server: %v", err)
	}

	key, err := cfg.ResolveAPIKey()
	if err != nil {
		logger.Sugar().Fatalf("Error resolving API key: %v", err)
	}

	logger.Sugar().Debugf("Signing tokens with key id %s", key.KeyID)

	router := mux.NewRouter()
	router.Path("/auth-token").Methods("GET").HandlerFunc(server.AuthTokenHandler)
	router.Path("/upload-policy").Methods("POST").HandlerFunc(server.UploadPolicyHandler)

	logger.Sugar().Infof("Listening on %s", addr)

	if cert == "" {
		err = http.ListenAndServe(addr, router)
	} else if certKey == "" {
		logger.Sugar().Fatalf("Must provide certficate (-tlscert) and key (-tlskey)")
	} else {
		err = http.ListenAndServeTLS(addr, cert, certKey, router)
	}

	if err != nil {
		logger.Sugar().Infof("Error serving: %v", err)
	}
}
