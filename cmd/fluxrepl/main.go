// Command fluxrepl is an interactive console for exploring a flux store:
// type Go expressions against a live *flux.Facade, evaluated through an
// embedded Go interpreter instead of a fixed set of REPL commands; the
// ":snapshot" command prints the current committed state.
package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/pixielity/flux"
	"github.com/pixielity/flux/digest"
	"github.com/pixielity/flux/fluxconfig"
	"github.com/pixielity/flux/fluxlog"
	"github.com/pixielity/flux/registry"
	"github.com/pixielity/flux/store"
)

func main() {
	driverName := pflag.String("driver", "memory", "fluxconfig driver: file, env, or memory")
	storeName := pflag.String("name", "repl", "name to register this store under in the registry")
	referenceCheck := pflag.Bool("reference-check", true, "enable reference-check on the store's facade options")
	pflag.Parse()

	log := fluxlog.New()
	log.SetLevel(fluxlog.InfoLevel)

	manager, err := fluxconfig.NewManager(*driverName)
	if err != nil {
		log.Fatal("fluxconfig: %v", err)
	}
	settings, err := manager.Load()
	if err != nil {
		log.Warn("fluxconfig: load failed, using defaults: %v", err)
		settings = fluxconfig.Default()
	}

	opts := settings.EngineOptions()
	opts.ReferenceCheck = *referenceCheck

	s := store.New(flux.NewObject(), opts)
	s.SetLogger(log)
	if err := registry.Default.Register(*storeName, s); err != nil {
		log.Fatal("registry: %v", err)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		log.Fatal("interp: stdlib symbols: %v", err)
	}
	if err := i.Use(fluxSymbols()); err != nil {
		log.Fatal("interp: flux symbols: %v", err)
	}
	if _, err := i.Eval(`import "flux"`); err != nil {
		log.Fatal("interp: import flux: %v", err)
	}

	fmt.Printf("fluxrepl — store %q registered (driver=%s, reference_check=%v)\n", *storeName, *driverName, opts.ReferenceCheck)
	fmt.Println(`type a Go expression evaluated against a live *flux.Facade bound to "flux.F"; ":snapshot" prints current state; ":quit" exits`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("flux> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == ":quit":
			return
		case line == ":snapshot":
			state := s.GetState()
			fmt.Printf("%#v (fingerprint=%s)\n", state, digest.Fingerprint(state))
			continue
		}

		_, err := s.Apply(func(f *flux.Facade, apply func(store.Mutator) (any, error)) (any, error) {
			if err := i.Use(interp.Exports{
				"flux/flux": {"F": reflect.ValueOf(f)},
			}); err != nil {
				return nil, err
			}
			_, evalErr := i.Eval(line)
			return nil, evalErr
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// fluxSymbols hand-builds the yaegi export table for the subset of flux's
// API the repl exposes, in place of the usual code-generated symbol table
// (there is no `yaegi extract` step in this build).
func fluxSymbols() interp.Exports {
	return interp.Exports{
		"flux/flux": {
			"NewObject": reflect.ValueOf(flux.NewObject),
			"ObjectOf":  reflect.ValueOf(flux.ObjectOf),
			"Wrap":      reflect.ValueOf(flux.Wrap),
			"Snapshot":  reflect.ValueOf(flux.Snapshot),
			"Tombstone": reflect.ValueOf(flux.Tombstone),
			"LengthKey": reflect.ValueOf(flux.LengthKey),
		},
	}
}
