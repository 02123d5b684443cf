package commands_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/timo-reymann/poc-base-image-manager/internal/commands"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

func TestReportCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "ReportCommand", testReportCommand, spec.Report(report.Terminal{}))
}

func testReportCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command     *cobra.Command
		outBuf      bytes.Buffer
		tmpDir      string
		configPath  string
		testVersion = "1.2.3"
	)

	it.Before(func() {
		var err error
		outBuf = bytes.Buffer{}
		command = commands.Report(logging.NewLogWithWriters(&outBuf, &outBuf), testVersion)

		tmpDir, err = os.MkdirTemp("", "image-manager-report-test")
		h.AssertNil(t, err)

		configPath = filepath.Join(tmpDir, ".image-manager.toml")
		h.AssertNil(t, os.WriteFile(configPath, []byte(`[[registries]]
  url = "registry.example.com"
  username = "ci-user"
  password = "hunter2"
  default = true
`), 0666))
	})

	it.After(func() {
		h.AssertNil(t, os.RemoveAll(tmpDir))
		h.AssertNil(t, os.Unsetenv("IMAGE_MANAGER_CONFIG"))
	})

	when("#Report", func() {
		when("the config file is present", func() {
			it.Before(func() {
				h.AssertNil(t, os.Setenv("IMAGE_MANAGER_CONFIG", configPath))
			})

			it("redacts credentials", func() {
				h.AssertNil(t, command.Execute())
				h.AssertContains(t, outBuf.String(), `Version:  `+testVersion)
				h.AssertContains(t, outBuf.String(), `url = "registry.example.com"`)
				h.AssertContains(t, outBuf.String(), `username = "[REDACTED]"`)
				h.AssertContains(t, outBuf.String(), `password = "[REDACTED]"`)

				h.AssertNotContains(t, outBuf.String(), "ci-user")
				h.AssertNotContains(t, outBuf.String(), "hunter2")
			})

			it("doesn't sanitize output if explicit", func() {
				command.SetArgs([]string{"-e"})
				h.AssertNil(t, command.Execute())
				h.AssertContains(t, outBuf.String(), `username = "ci-user"`)
				h.AssertContains(t, outBuf.String(), `password = "hunter2"`)
			})
		})

		when("the config file is not present", func() {
			it.Before(func() {
				missing := filepath.Join(tmpDir, "missing.toml")
				h.AssertNil(t, os.Setenv("IMAGE_MANAGER_CONFIG", missing))
			})

			it("logs a message", func() {
				h.AssertNil(t, command.Execute())
				h.AssertContains(t, outBuf.String(), fmt.Sprintf("(no config file found at %s)", filepath.Join(tmpDir, "missing.toml")))
			})
		})
	})
}
