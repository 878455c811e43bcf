package production

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
	"github.com/CoreumFoundation/node-installer/pkg/shell/shelltest"
)

var linux = Platform{OS: "linux", Arch: "amd64", Machine: "x86_64"}

func TestGenerateCoredService(t *testing.T) {
	ssg := NewSystemdServiceGenerator("/usr/local/bin", "alice")

	unit, err := ssg.GenerateCoredService("/home/alice/.cored")
	require.NoError(t, err)

	for _, want := range []string{
		"User=alice",
		"After=network-online.target",
		"ExecStart=/usr/local/bin/cored start --home /home/alice/.cored",
		"Restart=always",
		"RestartSec=3",
		"LimitNOFILE=infinity",
		"LimitNPROC=infinity",
		"WantedBy=multi-user.target",
	} {
		assert.Contains(t, unit, want)
	}
	assert.NotContains(t, unit, "DAEMON_")
}

func TestGenerateCosmovisorService(t *testing.T) {
	ssg := NewSystemdServiceGenerator("/opt/bin", "bob")

	unit, err := ssg.GenerateCosmovisorService("/data/coreum", "coreum-testnet-1")
	require.NoError(t, err)

	for _, want := range []string{
		"User=bob",
		`Environment="DAEMON_NAME=cored"`,
		`Environment="DAEMON_HOME=/data/coreum/coreum-testnet-1"`,
		`Environment="DAEMON_RESTART_AFTER_UPGRADE=true"`,
		`Environment="DAEMON_ALLOW_DOWNLOAD_BINARIES=false"`,
		`Environment="DAEMON_LOG_BUFFER_SIZE=512"`,
		`Environment="UNSAFE_SKIP_BACKUP=true"`,
		"ExecStart=/opt/bin/cosmovisor run start --home /data/coreum",
		"Restart=always",
	} {
		assert.Contains(t, unit, want)
	}
}

func newServiceInstaller(t *testing.T, rec *shelltest.Recorder, input string, platform Platform) *ServiceInstaller {
	t.Helper()
	p, _ := testPrompter(input)
	return NewServiceInstaller(p,
		NewSystemdServiceGenerator("/usr/local/bin", "alice"),
		NewSystemdController(rec, "/lib/systemd/system"),
		logging.NewNopLogger(),
		platform,
	)
}

func TestServiceInstallConfirmed(t *testing.T) {
	var staged string
	rec := shelltest.NewRecorder().On("sudo mv", func(cmd shell.Command) error {
		data, err := os.ReadFile(cmd.Args[1])
		staged = string(data)
		return err
	})
	si := newServiceInstaller(t, rec, "", linux)

	name, err := si.Install(context.Background(), ServiceRequest{Home: "/home/alice/.cored", ChainID: "coreum-mainnet-1", Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, ServiceCored, name)
	assert.Contains(t, staged, "ExecStart=/usr/local/bin/cored start")

	cmds := rec.Commands()
	require.Len(t, cmds, 3)
	assert.True(t, strings.HasSuffix(cmds[0], " /lib/systemd/system/cored.service"))
	assert.Equal(t, "sudo systemctl daemon-reload", cmds[1])
	assert.Equal(t, "sudo systemctl restart systemd-journald", cmds[2])
}

func TestServiceInstallSupervised(t *testing.T) {
	rec := shelltest.NewRecorder()
	si := newServiceInstaller(t, rec, "1\n", linux)

	name, err := si.Install(context.Background(), ServiceRequest{Home: "/h", ChainID: "coreum-testnet-1", Supervised: true})
	require.NoError(t, err)
	assert.Equal(t, ServiceCosmovisor, name)
	assert.True(t, strings.HasSuffix(rec.Commands()[0], " /lib/systemd/system/cosmovisor.service"))
}

func TestServiceInstallDeclined(t *testing.T) {
	rec := shelltest.NewRecorder()
	si := newServiceInstaller(t, rec, "2\n", linux)

	name, err := si.Install(context.Background(), ServiceRequest{Home: "/h", ChainID: "coreum-testnet-1"})
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Empty(t, rec.Commands())
}

func TestServiceInstallSkippedOffLinux(t *testing.T) {
	rec := shelltest.NewRecorder()
	// no input: the prompt must not be shown
	si := newServiceInstaller(t, rec, "", Platform{OS: "darwin", Arch: "arm64"})

	name, err := si.Install(context.Background(), ServiceRequest{Home: "/h", ChainID: "coreum-testnet-1"})
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Empty(t, rec.Commands())
}

func TestServiceInstallFailures(t *testing.T) {
	tests := []struct {
		fail string
		code string
	}{
		{"sudo mv", errs.CodePermissionDenied},
		{"sudo systemctl daemon-reload", errs.CodeCommandFailed},
		{"sudo systemctl restart", errs.CodeCommandFailed},
	}

	for _, tt := range tests {
		t.Run(tt.fail, func(t *testing.T) {
			rec := shelltest.NewRecorder().Fail(tt.fail)
			si := newServiceInstaller(t, rec, "", linux)

			_, err := si.Install(context.Background(), ServiceRequest{Home: "/h", ChainID: "coreum-testnet-1", Confirmed: true})
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.GetCode(err))
		})
	}
}

func TestSystemdControllerDefaultDir(t *testing.T) {
	sc := NewSystemdController(shelltest.NewRecorder(), "")
	assert.Equal(t, "/lib/systemd/system/cored.service", sc.UnitPath(ServiceCored))

	sc = NewSystemdController(shelltest.NewRecorder(), "/etc/systemd/system")
	assert.Equal(t, "/etc/systemd/system/cosmovisor.service", sc.UnitPath(ServiceCosmovisor))
}
