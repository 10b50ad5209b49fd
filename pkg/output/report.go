package output

import (
	"errors"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ineffectivecoder/SpoolGooser/pkg/printnightmare"
	"github.com/ineffectivecoder/SpoolGooser/pkg/rprn"
)

// Verdict prints a check report the way its code deserves
func (c *Console) Verdict(host string, report printnightmare.Report) {
	switch report.Code {
	case printnightmare.CheckVulnerable:
		c.Good("%s - The target is vulnerable. %s", host, report.Reason)
	case printnightmare.CheckDetected:
		c.Status("%s - The service is running, but could not be validated. %s", host, report.Reason)
	case printnightmare.CheckSafe:
		c.Status("%s - The target is not exploitable. %s", host, report.Reason)
	default:
		c.Error("%s - Cannot reliably check exploitability. %s", host, report.Reason)
	}
}

// Failure prints a fatal session error with its reason
func (c *Console) Failure(err error) {
	var f *printnightmare.Failure
	if errors.As(err, &f) {
		c.Error("Exploit aborted due to failure: %s: %s", f.Reason, f.Message)
		if f.Err != nil {
			c.Debug("Cause: %v", f.Err)
		}
		return
	}
	c.Error("%v", err)
}

// DriverTable renders installed drivers as a table
func DriverTable(w io.Writer, drivers []rprn.DriverInfo2) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Version", "Environment", "Driver Path", "Data File", "Config File"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, d := range drivers {
		table.Append([]string{
			rprn.Text(d.Name),
			strconv.FormatUint(uint64(d.Version), 10),
			rprn.Text(d.Environment),
			rprn.Text(d.DriverPath),
			rprn.Text(d.DataFile),
			rprn.Text(d.ConfigFile),
		})
	}
	table.Render()
}
