package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagIgnore  = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

// GenesisPath returns the location of the tendermint genesis file.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func parseInitFlags(args []string) (bool, []string, error) {
	var ignore bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&ignore, flagIgnore, false, "ignore already existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return false, nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return ignore, initFlags.Args(), nil
}

// InitCmd will store the app_state generated by the application into the
// genesis file created by "tendermint init". An existing app_state is
// overwritten only with the -i flag.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	logger.Info("Loading genesis", "home", home)
	ignore, rest, err := parseInitFlags(args)
	if err != nil {
		return err
	}

	genFile := GenesisPath(home)
	if _, err := os.Stat(genFile); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "%s does not exist, run tendermint init first", genFile)
		}
		return errors.Wrap(errors.ErrState, err.Error())
	}

	options, err := gen(rest)
	if err != nil {
		return errors.Wrap(err, "cannot generate app state")
	}

	if err := addGenesisOptions(genFile, options, ignore); err != nil {
		return err
	}
	logger.Info("App state written", "file", genFile)
	return nil
}

func addGenesisOptions(filename string, options json.RawMessage, ignore bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis: %s", err)
	}

	if v, ok := doc[appStateKey]; ok && len(v) > 0 && string(v) != "null" && !ignore {
		return errors.Wrap(errors.ErrDuplicate, "app_state already present, use -i to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot serialize genesis: %s", err)
	}
	return ioutil.WriteFile(filename, out, 0600)
}
