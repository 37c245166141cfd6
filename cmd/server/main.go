package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"net"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"matrix-arcade/internal/config"
	"matrix-arcade/internal/metrics"
	"matrix-arcade/internal/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfgPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.Server.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	if cfg.Server.MetricsAddr != "" {
		metrics.StartHTTP(cfg.Server.MetricsAddr, reg)
	}

	// Start SSH server (blocks)
	listenAddr := cfg.Server.ListenAddr()
	sshServer := server.NewSSHServer(listenAddr, cfg.Server.HostKey, cfg, collector)
	_, port, _ := net.SplitHostPort(listenAddr)
	log.Printf("Starting matrix arcade, connect with: ssh -t -p %s localhost", port)
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
