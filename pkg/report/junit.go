// Package report writes run reports in formats other tools consume.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/beevik/etree"
)

// SuiteName is the name of the single JUnit test suite
const SuiteName = "pluck"

// JUnit builds a JUnit XML document with one testcase per item
func JUnit(report *types.Report) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", SuiteName)
	suites.CreateAttr("tests", strconv.Itoa(len(report.Results)))
	suites.CreateAttr("failures", strconv.Itoa(report.Failed()))
	suites.CreateAttr("time", seconds(report.Duration))

	suite := suites.CreateElement("testsuite")
	suite.CreateAttr("name", SuiteName)
	suite.CreateAttr("id", report.RunID)
	suite.CreateAttr("tests", strconv.Itoa(len(report.Results)))
	suite.CreateAttr("failures", strconv.Itoa(report.Failed()))
	suite.CreateAttr("errors", "0")
	suite.CreateAttr("skipped", strconv.Itoa(report.Skipped()))
	suite.CreateAttr("time", seconds(report.Duration))
	suite.CreateAttr("timestamp", report.Started.UTC().Format(time.RFC3339))

	props := suite.CreateElement("properties")
	addProperty(props, "run_id", report.RunID)
	addProperty(props, "dry_run", strconv.FormatBool(report.DryRun))

	for _, res := range report.Results {
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("classname", res.Item.DestinationDirectory)
		tc.CreateAttr("name", caseName(res.Item))
		tc.CreateAttr("time", seconds(res.Duration))

		switch {
		case res.Skipped:
			skipped := tc.CreateElement("skipped")
			if res.Message != "" {
				skipped.CreateAttr("message", res.Message)
			}
		case !res.Success:
			failure := tc.CreateElement("failure")
			failure.CreateAttr("message", failureMessage(res))
			failure.CreateAttr("type", string(errors.GetErrorCode(res.Error)))
			failure.SetText(fmt.Sprintf("source: %s\ndestination: %s\n", res.Item.SourcePath, res.Item.DestinationPath()))
		default:
			out := tc.CreateElement("system-out")
			out.SetText(fmt.Sprintf("%s -> %s (%d bytes)", res.Item.SourcePath, res.Item.DestinationPath(), res.Bytes))
		}
	}

	doc.Indent(2)
	return doc
}

// WriteJUnit writes the JUnit document for report to w
func WriteJUnit(w io.Writer, report *types.Report) error {
	if _, err := JUnit(report).WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write junit report")
	}
	return nil
}

// WriteJUnitFile writes the JUnit document to path, creating parent
// directories
func WriteJUnitFile(path string, report *types.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", path)
	}
	doc := JUnit(report)
	if err := doc.WriteToFile(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write junit report %s", path).
			WithDetail("path", path)
	}
	return nil
}

func addProperty(props *etree.Element, name, value string) {
	p := props.CreateElement("property")
	p.CreateAttr("name", name)
	p.CreateAttr("value", value)
}

func caseName(item types.TransferItem) string {
	if name := item.FileName(); name != "" {
		return name
	}
	return item.SourcePath
}

func failureMessage(res types.ItemResult) string {
	if res.Message != "" {
		return res.Message
	}
	if res.Error != nil {
		return res.Error.Error()
	}
	return "failed"
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
