package main

import (
	"database/sql"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/editorial/backend"
	"github.com/wansing/editorial/core"
	"github.com/wansing/editorial/pubapi"
	"github.com/wansing/editorial/search"
	"github.com/wansing/editorial/sqldb"
	"github.com/wansing/editorial/util"
	"github.com/xo/dburl"
)

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var dbArg string // is in both FlagSets

	// default FlagSet

	flag.StringVar(&dbArg, "db", "sqlite3:editorial.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared", "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve the backend API at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)
	initFlags.StringVar(&dbArg, "db", "sqlite3:editorial.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared", "sql database url, see github.com/xo/dburl") // copied from above
	var username = initFlags.String("user", "", "creates a user with this `name`")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		log.Printf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		log.Printf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		log.Printf("could not ping sql database: %v", err)
		return
	}

	log.Printf("using database %s", dbURL.String())

	// assemble stuff

	var db = &core.CoreDB{}
	db.ActionDB = sqldb.NewActionDB(sqlDB)
	db.ArtefactDB = sqldb.NewArtefactDB(sqlDB)
	db.EditionDB = sqldb.NewEditionDB(sqlDB)
	db.UserDB = sqldb.NewUserDB(sqlDB)

	// collaborators, configured in config/editorial.ini

	db.SearchIndex = search.Null{}
	db.PublishingAPI = pubapi.Null{}

	if config, err := util.Ini("config/editorial.ini"); err == nil {
		if searchURL := config["search-url"]; searchURL != "" {
			db.SearchIndex = search.NewClient(searchURL)
			log.Printf("using search index at %s", searchURL)
		}
		if apiURL := config["publishing-api-url"]; apiURL != "" {
			var renderingApp = config["rendering-app"]
			if renderingApp == "" {
				renderingApp = "frontend"
			}
			db.PublishingAPI = pubapi.NewClient(apiURL, renderingApp)
			log.Printf("using publishing api at %s", apiURL)
		}
	} else {
		log.Printf("no collaborator config (%v), external sync is logged only", err)
	}

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	// init

	if initFlags.Parsed() {
		if *username != "" {
			if _, err := db.CreateUser(*username); err != nil {
				log.Printf(`error creating user "%s": %v`, *username, err)
			}
		}
		return
	}

	listen(db, *listenAddr)
}

func listen(db *core.CoreDB, addr string) {

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      backend.NewBackendRouter(db),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")
	httpSrv.Close()
}
