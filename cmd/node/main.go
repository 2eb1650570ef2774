// Command node is the validator's execution shell: it opens the durable
// store, applies genesis on first run, and replays consensus-ordered batch
// files through the deterministic engine. Ordering, transport and proof
// construction live in their own services.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/wagerchain/wagerchain/config"
	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/engine"
	"github.com/wagerchain/wagerchain/events"
	"github.com/wagerchain/wagerchain/storage"
)

// batchFile is the on-disk shape consensus hands over per view.
type batchFile struct {
	Seed         core.Seed           `json:"seed"`
	Transactions []*core.Transaction `json:"transactions"`
}

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (defaults used if empty)")
		batchPath  = flag.String("batch", "", "path to a batch file to execute")
		dryRun     = flag.Bool("dry-run", false, "execute without flushing the diff")
	)
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("[node] load config: %v", err)
		}
		cfg = loaded
	}
	if *batchPath == "" {
		log.Fatal("[node] -batch is required")
	}

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "state"))
	if err != nil {
		log.Fatalf("[node] open state db: %v", err)
	}
	defer db.Close()

	if err := engine.ApplyGenesis(db, cfg.Genesis); err != nil {
		log.Fatalf("[node] apply genesis: %v", err)
	}

	data, err := os.ReadFile(*batchPath)
	if err != nil {
		log.Fatalf("[node] read batch: %v", err)
	}
	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		log.Fatalf("[node] decode batch: %v", err)
	}

	eng := engine.New(db, batch.Seed)
	outputs, nonces, err := eng.Execute(batch.Transactions)
	if err != nil {
		log.Fatalf("[node] execute batch (view %d): %v", batch.Seed.View(), err)
	}
	diff := eng.Commit()

	broker := events.NewEmitter()
	broker.Subscribe(core.EventGameResolved, func(ev core.Event) {
		log.Printf("[node] session %v resolved: %v (tx %s)", ev.Data["session_id"], ev.Data["result"], ev.TxID)
	})
	broker.Subscribe(core.EventGameError, func(ev core.Event) {
		log.Printf("[node] rejected tx %s: %v %v", ev.TxID, ev.Data["code"], ev.Data["message"])
	})
	broker.EmitOutputs(outputs)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"view":    batch.Seed.View(),
		"outputs": outputs,
		"nonces":  nonces,
		"writes":  len(diff),
	}); err != nil {
		log.Fatalf("[node] encode result: %v", err)
	}

	if *dryRun {
		log.Printf("[node] dry run: %d staged writes discarded", len(diff))
		return
	}
	if err := storage.FlushDiff(db, diff); err != nil {
		log.Fatalf("[node] flush diff: %v", err)
	}
	log.Printf("[node] view %d: %d tx, %d outputs, %d writes", batch.Seed.View(), len(batch.Transactions), len(outputs), len(diff))
}
