package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caasmo/favicache"
	"github.com/caasmo/favicache/core"
)

func main() {
	configPath := flag.String("config", "favicache.toml", "path to TOML config file")
	routerImpl := flag.String("router", "servemux", "router implementation: servemux or httprouter")
	flag.Parse()

	opts := []core.Option{}

	switch *routerImpl {
	case "servemux":
		opts = append(opts, favicache.WithRouterServeMux())
	case "httprouter":
		opts = append(opts, favicache.WithRouterHttprouter())
	default:
		fmt.Fprintf(os.Stderr, "unknown router %q\n", *routerImpl)
		os.Exit(2)
	}

	app, srv, err := favicache.New(*configPath, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	cfg := app.Config()
	app.Logger().Info("favicached starting",
		"config", *configPath,
		"router", *routerImpl,
		"cache", cfg.Cache.Activated,
	)

	srv.Run()
}
