package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/pkg/config"
	"github.com/NickelKnock/Axial-Motor-Design-Calculator/pkg/sizing"
	"github.com/NickelKnock/Axial-Motor-Design-Calculator/pkg/types"
)

var pretty bool

type opts struct {
	// single design via flags
	design config.Design

	// batch input
	configPath string

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
}

type row struct {
	Name               string  `json:"name"`
	Poles              int     `json:"poles"`
	Magnets            int     `json:"magnets"`
	Turns              int     `json:"turns"`
	KtPerTurn          float64 `json:"kt_per_turn_nm_a"`
	PhaseCurrentA      float64 `json:"phase_current_a"`
	DCCurrentA         float64 `json:"dc_current_a"`
	VoltageUtilization float64 `json:"voltage_utilization"`
	ElectricalHz       float64 `json:"electrical_hz"`
	MechanicalRPM      float64 `json:"rpm"`
	PowerW             float64 `json:"power_w"`
	MaxTorqueNm        float64 `json:"max_torque_at_i_limit_nm"`
	MaxRPM             float64 `json:"max_rpm_at_v_limit"`
	VoltageOK          bool    `json:"voltage_ok"`
	PhaseCurrentOK     bool    `json:"phase_current_ok"`
	DCCurrentOK        bool    `json:"dc_current_ok"`
	FrequencyOK        bool    `json:"frequency_ok"`
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "axialsizer",
		Short: "Axial-flux motor electromagnetic sizing tool",
		Long: `axialsizer is a first-cut sizing calculator for axial-flux PM motors.
Given torque/speed targets, bus voltage and coil/pole geometry it derives
winding turns, phase and DC current demand, voltage utilization, electrical
frequency and pass/fail margins against ESC limits.

A single design is described with flags; a family of designs can be sized in
one run from a YAML file with --config.

Examples:
  axialsizer --coils 12 --outer-radius 0.179 --voltage 72 --torque 200 --rpm 750 \
             --phase-limit 200 --dc-limit 300
  axialsizer --config designs.yaml --csv out.csv --html report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
		SilenceUsage: true,
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "format results as tables instead of CSV-like lines")
	root.Flags().StringVar(&o.configPath, "config", "", "YAML design file (overrides the single-design flags)")

	d := &o.design
	root.Flags().StringVar(&d.Name, "name", "design", "design name used in reports")
	root.Flags().IntVar(&d.Coils, "coils", 0, "number of stator coils")
	root.Flags().IntVar(&d.Poles, "poles", 0, "number of rotor poles (0 = two per three coils)")
	root.Flags().Float64Var(&d.OuterRadiusM, "outer-radius", 0, "rotor outer radius in meters")
	root.Flags().Float64Var(&d.InnerRadiusRatio, "inner-ratio", 0, "inner/outer radius ratio (0 = 0.58)")
	root.Flags().Float64Var(&d.FluxDensityT, "flux-density", 0, "average air-gap flux density in Tesla (0 = 0.6)")
	root.Flags().Float64Var(&d.WindingFactor, "winding-factor", 0, "winding factor (0 = 0.92)")
	root.Flags().Float64Var(&d.VoltageV, "voltage", 0, "bus voltage in Volts")
	root.Flags().StringVar(&d.VoltageMode, "voltage-mode", "dc_bus", "voltage interpretation: dc_bus or ac_rms")
	root.Flags().Float64Var(&d.ModulationIndex, "modulation", 0, "inverter modulation index (0 = 0.95)")
	root.Flags().StringVar(&d.Turns, "turns", "auto", "winding turns: \"auto\" or a positive integer")
	root.Flags().BoolVar(&d.DualPlate, "dual-plate", false, "dual rotor plates on a shared winding")
	root.Flags().Float64Var(&d.TargetTorqueNm, "torque", 0, "target torque in N·m")
	root.Flags().Float64Var(&d.RPM, "rpm", 0, "target mechanical speed in RPM")
	root.Flags().Float64Var(&d.ElectricalHz, "hz", 0, "target electrical frequency in Hz (alternative to --rpm)")
	root.Flags().Float64Var(&d.PhaseCurrentLimitA, "phase-limit", 0, "ESC phase current limit in Amps")
	root.Flags().Float64Var(&d.DCCurrentLimitA, "dc-limit", 0, "battery/DC current limit in Amps")
	root.Flags().Float64Var(&d.ESCFreqMaxHz, "esc-fmax", 0, "ESC electrical frequency ceiling in Hz (0 = unconstrained)")
	root.Flags().Float64Var(&d.DrivelineEfficiency, "efficiency", 0, "assumed driveline efficiency (0 = 0.9)")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write one row per design to a CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write results to a JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write an HTML report")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts) error {
	designs := []config.Design{o.design}
	if o.configPath != "" {
		file, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		designs = file.Designs
	}

	var rows []row
	var failed int
	for _, d := range designs {
		cfg, err := d.Sizing()
		if err != nil {
			slog.Error("bad design", "design", d.Name, "err", err)
			failed++
			continue
		}
		res, err := sizing.Compute(cfg)
		if err != nil {
			var ce *sizing.ConfigError
			if errors.As(err, &ce) {
				for _, violation := range ce.Violations {
					slog.Error("invalid input", "design", d.Name, "violation", violation)
				}
			} else {
				slog.Error("sizing failed", "design", d.Name, "err", err)
			}
			failed++
			continue
		}

		if pretty {
			printResultTable(d, cfg, res)
		} else {
			printCsvLike(d.Name, res)
		}
		rows = append(rows, newRow(d.Name, res))
	}

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, rows); err != nil {
			slog.Error("write csv", "err", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, rows); err != nil {
			slog.Error("write json", "err", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, rows); err != nil {
			slog.Error("write html", "err", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d designs failed", failed, len(designs))
	}
	return nil
}

func newRow(name string, res *sizing.Result) row {
	return row{
		Name:               name,
		Poles:              res.Poles,
		Magnets:            res.Magnets,
		Turns:              res.Turns,
		KtPerTurn:          res.KtPerTurn,
		PhaseCurrentA:      res.PhaseCurrent,
		DCCurrentA:         res.DCCurrent,
		VoltageUtilization: res.VoltageUtilization,
		ElectricalHz:       res.ElectricalFreq,
		MechanicalRPM:      res.MechanicalRPM,
		PowerW:             res.MechanicalPower,
		MaxTorqueNm:        res.MaxTorqueAtCurrentLimit,
		MaxRPM:             res.MaxRPMAtVoltageLimit,
		VoltageOK:          res.Flags.Voltage,
		PhaseCurrentOK:     res.Flags.PhaseCurrent,
		DCCurrentOK:        res.Flags.DCCurrent,
		FrequencyOK:        res.Flags.Frequency,
	}
}

func yesNo(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}

func printResultTable(d config.Design, cfg sizing.Config, res *sizing.Result) {
	fmt.Printf("\n%s  (%s turns, %s, dual plate: %v)\n", d.Name, cfg.TurnsMode, cfg.VoltageMode, cfg.DualPlate)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	p := func(k, v string) { fmt.Fprintf(tw, "  %s\t%s\n", k, v) }

	p("Poles / magnets", fmt.Sprintf("%d / %d", res.Poles, res.Magnets))
	p("Inner radius", fmt.Sprintf("%.4f m", res.InnerRadius))
	p("Rotor area", fmt.Sprintf("%.5f m²", res.RotorArea))
	p("Flux per pole", fmt.Sprintf("%.5f Wb", res.FluxPerPole))
	p("Peak flux density", fmt.Sprintf("%.3f T", res.PeakFluxDensity))
	p("Kt per turn", fmt.Sprintf("%.5f N·m/A", res.KtPerTurn))
	p("Turns", strconv.Itoa(res.Turns))
	p("Phase current", types.Amps(res.PhaseCurrent).Humanized())
	p("DC current (est.)", types.Amps(res.DCCurrent).Humanized())
	p("Voltage utilization", fmt.Sprintf("%.3f", res.VoltageUtilization))
	p("Electrical frequency", types.Hertz(res.ElectricalFreq).Humanized())
	p("Mechanical speed", types.RPM(res.MechanicalRPM).Humanized())
	p("Mechanical power", types.Watts(res.MechanicalPower).Humanized())
	p("Max torque @ I-limit", types.NewtonMeters(res.MaxTorqueAtCurrentLimit).Humanized())
	p("Max RPM @ V-limit", types.RPM(res.MaxRPMAtVoltageLimit).Humanized())
	p("Airgap shear stress", fmt.Sprintf("%.0f / %.0f N/m²", res.ShearStress, res.ShearStressLimit))
	p("V-limit pass", yesNo(res.Flags.Voltage))
	p("I-limit pass", yesNo(res.Flags.PhaseCurrent))
	p("DC-limit pass", yesNo(res.Flags.DCCurrent))
	p("ESC f_e pass", yesNo(res.Flags.Frequency))
	tw.Flush()
}

func printCsvLike(name string, res *sizing.Result) {
	fmt.Printf("%s, %d, %.5f, %.1f, %.1f, %.4f, %.1f, %.0f, %.1f, %.1f, %.0f, %s, %s, %s, %s\n",
		name, res.Turns, res.KtPerTurn, res.PhaseCurrent, res.DCCurrent,
		res.VoltageUtilization, res.ElectricalFreq, res.MechanicalRPM,
		res.MechanicalPower, res.MaxTorqueAtCurrentLimit, res.MaxRPMAtVoltageLimit,
		yesNo(res.Flags.Voltage), yesNo(res.Flags.PhaseCurrent),
		yesNo(res.Flags.DCCurrent), yesNo(res.Flags.Frequency))
}

var csvHeader = []string{
	"name", "poles", "magnets", "turns", "kt_per_turn_nm_a", "phase_current_a",
	"dc_current_a", "voltage_utilization", "electrical_hz", "rpm", "power_w",
	"max_torque_at_i_limit_nm", "max_rpm_at_v_limit",
	"voltage_ok", "phase_current_ok", "dc_current_ok", "frequency_ok",
}

func writeCSV(path string, rows []row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, r := range rows {
		rec := []string{
			r.Name, strconv.Itoa(r.Poles), strconv.Itoa(r.Magnets), strconv.Itoa(r.Turns),
			ff(r.KtPerTurn), ff(r.PhaseCurrentA), ff(r.DCCurrentA), ff(r.VoltageUtilization),
			ff(r.ElectricalHz), ff(r.MechanicalRPM), ff(r.PowerW), ff(r.MaxTorqueNm), ff(r.MaxRPM),
			strconv.FormatBool(r.VoltageOK), strconv.FormatBool(r.PhaseCurrentOK),
			strconv.FormatBool(r.DCCurrentOK), strconv.FormatBool(r.FrequencyOK),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, rows []row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func writeHTML(path string, rows []row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct{ Rows []row }{Rows: rows}); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var tpl = template.Must(template.New("rep").Funcs(template.FuncMap{
	"watts": func(v float64) string { return types.Watts(v).Humanized() },
	"hertz": func(v float64) string { return types.Hertz(v).Humanized() },
	"yesno": yesNo,
}).Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Axial Sizing Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
.small{color:#555}
.no{color:#b00;font-weight:bold}
</style>

<h1>Axial Sizing Report</h1>
<p class="small">Designs: {{len .Rows}}</p>

<table>
<thead>
<tr>
<th>design</th><th>poles</th><th>turns</th><th>Kt/turn (N·m/A)</th>
<th>I_phase</th><th>I_dc</th><th>U</th><th>f_e</th><th>RPM</th><th>P_mech</th>
<th>T_max@I</th><th>RPM_max@V</th><th>V</th><th>I</th><th>DC</th><th>f</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td style="text-align:left">{{.Name}}</td>
<td>{{.Poles}}</td>
<td>{{.Turns}}</td>
<td>{{printf "%.5f" .KtPerTurn}}</td>
<td>{{printf "%.1f A" .PhaseCurrentA}}</td>
<td>{{printf "%.1f A" .DCCurrentA}}</td>
<td>{{printf "%.3f" .VoltageUtilization}}</td>
<td>{{hertz .ElectricalHz}}</td>
<td>{{printf "%.0f" .MechanicalRPM}}</td>
<td>{{watts .PowerW}}</td>
<td>{{printf "%.1f" .MaxTorqueNm}}</td>
<td>{{printf "%.0f" .MaxRPM}}</td>
<td{{if not .VoltageOK}} class="no"{{end}}>{{yesno .VoltageOK}}</td>
<td{{if not .PhaseCurrentOK}} class="no"{{end}}>{{yesno .PhaseCurrentOK}}</td>
<td{{if not .DCCurrentOK}} class="no"{{end}}>{{yesno .DCCurrentOK}}</td>
<td{{if not .FrequencyOK}} class="no"{{end}}>{{yesno .FrequencyOK}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
