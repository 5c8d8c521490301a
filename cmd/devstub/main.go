// devstub runs the in-memory intake API double locally so the client
// and CLI can be exercised without the real service.
package main

import (
	"log"

	"verification-client/internal/shared/config"
	"verification-client/internal/shared/telemetry"
	"verification-client/internal/stub"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Env); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer telemetry.Sync()

	r := stub.NewRouter(cfg.UploadDir)

	addr := ":" + cfg.Port
	log.Printf("Starting intake stub on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
