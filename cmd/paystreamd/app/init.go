package app

import (
	"encoding/json"
	"path/filepath"
	"strconv"

	"github.com/paystream/paystream/app"
	"github.com/paystream/paystream/commands/server"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/events"
	"github.com/paystream/paystream/gconf"
	"github.com/paystream/paystream/x/paychan"
	"github.com/paystream/paystream/x/stream"
	"github.com/paystream/paystream/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
)

// GenInitOptions produces the app_state with the configuration of all
// extensions.
//
// Optional arguments are the smallest channel deposit (default 1) and the
// longest stream duration (default 0, no limit).
func GenInitOptions(args []string) (json.RawMessage, error) {
	streamConf := stream.Configuration{MaxDuration: 0}
	paychanConf := paychan.Configuration{MinDeposit: 1}
	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "min deposit: %s", err)
		}
		paychanConf.MinDeposit = v
	}
	if len(args) > 1 {
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "max duration: %s", err)
		}
		streamConf.MaxDuration = v
	}
	if err := streamConf.Validate(); err != nil {
		return nil, err
	}
	if err := paychanConf.Validate(); err != nil {
		return nil, err
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		gconf.GenesisKey: dict{
			"stream":  streamConf,
			"paychan": paychanConf,
		},
	})
}

// Node is the application run by the start command. Closing it flushes the
// event bus.
type Node struct {
	app.BaseApp
	bus *events.Bus
}

var _ abci.Application = Node{}

// Close stops the event bus after all queued events were delivered.
func (n Node) Close() {
	n.bus.Close()
	if dropped := n.bus.Dropped(); dropped > 0 {
		n.Logger().Error("events dropped", "count", dropped)
	}
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options server.AppOptions) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	var metrics *utils.Metrics
	if options.Registerer != nil {
		m, err := utils.NewMetrics(options.Registerer)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	bus := events.NewBus(options.EventBusCapacity)
	stack := Stack(bus, metrics)
	application, err := Application("paystream", stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		bus.Close()
		return nil, err
	}
	application.WithLogger(options.Logger)
	go logEvents(options.Logger.With("module", "events"), bus.Subscribe(events.AllTopics))
	return Node{BaseApp: application, bus: bus}, nil
}
