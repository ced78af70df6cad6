package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/report"
	"github.com/solardome/stratum/internal/scoring"
)

const GaugeFile = "gauge.svg"

type PublishResult struct {
	OutDir    string
	Pages     []string
	Snapshot  string
	Checksums string
	RunLog    string
}

// WriteSite writes every page of ds under outDir as static HTML plus a standalone
// gauge image, and returns the written paths in write order.
func WriteSite(outDir string, ds *catalog.Dataset, version string) ([]string, error) {
	r := Renderer{Version: version, Static: true}
	pages := map[string]string{
		"/":          r.Index(ds),
		"/tickets":   r.Tickets(ds, ""),
		"/standards": r.Standards(ds, ""),
		"/reports":   r.Reports(ds),
	}
	order := []string{"/", "/tickets", "/standards", "/reports"}
	for _, t := range ds.Tickets {
		body, err := r.TicketDetail(ds, t)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		route := TicketRoute(t.ID)
		pages[route] = body
		order = append(order, route)
	}

	written := make([]string, 0, len(order)+1)
	for _, route := range order {
		p := filepath.Join(outDir, filepath.FromSlash(StaticFile(route)))
		if err := writeFile(p, []byte(pages[route])); err != nil {
			return nil, err
		}
		written = append(written, p)
	}

	sum := scoring.Summarize(report.FleetOf(ds), gauge.SizeLarge)
	svgPath := filepath.Join(outDir, GaugeFile)
	if err := writeFile(svgPath, []byte(gauge.SVG(sum.Gauge))); err != nil {
		return nil, err
	}
	return append(written, svgPath), nil
}

// Publish renders the static site, its JSON snapshot and a checksum manifest, and
// records each step in the run log.
func Publish(outDir string, ds *catalog.Dataset, version string, now time.Time) (PublishResult, error) {
	res := PublishResult{
		OutDir:    outDir,
		Snapshot:  report.SnapshotPath(outDir),
		Checksums: report.ChecksumsPath(outDir),
		RunLog:    report.RunLogPath(outDir),
	}
	runLog, err := report.OpenRunLog(res.RunLog)
	if err != nil {
		return res, fmt.Errorf("open run log: %w", err)
	}
	defer runLog.Close()

	runLog.Info("render.start", map[string]interface{}{
		"out_dir":       outDir,
		"source":        ds.Source,
		"source_sha256": ds.Digest,
		"version":       version,
	})
	pages, err := WriteSite(outDir, ds, version)
	if err != nil {
		runLog.Warn("render.failed", map[string]interface{}{"stage": "pages", "error": err.Error()})
		return res, err
	}
	res.Pages = pages

	if err := report.WriteJSON(res.Snapshot, report.BuildSnapshot(ds, now)); err != nil {
		runLog.Warn("render.failed", map[string]interface{}{"stage": "snapshot", "error": err.Error()})
		return res, err
	}
	artifacts := append(append([]string{}, pages...), res.Snapshot)
	if err := report.WriteChecksums(res.Checksums, artifacts); err != nil {
		runLog.Warn("render.failed", map[string]interface{}{"stage": "checksums", "error": err.Error()})
		return res, err
	}
	runLog.Info("render.complete", map[string]interface{}{
		"pages":         len(pages),
		"non_compliant": len(ds.NonCompliant()),
		"checksums":     res.Checksums,
	})
	return res, nil
}

func writeFile(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
