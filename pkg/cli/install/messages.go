package install

import (
	"github.com/CoreumFoundation/node-installer/pkg/environments/production"
	"github.com/CoreumFoundation/node-installer/pkg/prompt"
)

func welcome(p *prompt.Prompter) {
	p.Title("\n Welcome to the Coreum node installer!\n")
	p.Printf("\nFor more information, please visit https://docs.coreum.dev\n\n")
	p.Printf("If you have an old Coreum installation,\n")
	p.Printf("- backup any important data before proceeding\n")
	p.Printf("- ensure that no cored services are running in the background\n\n")
}

func complete(p *prompt.Prompter, ic *InstallationContext) {
	if ic.Mode == ModeClient {
		p.Title("\n✨ Congratulations! You have successfully completed setting up Coreum client! ✨\n")
		p.Printf("🧪 Try running: %s\n\n", prompt.CommandStyle.Render("cored status --home "+ic.Home))
		return
	}

	p.Title("\n✨ Congratulations! You have successfully completed setting up Coreum node! ✨\n")
	p.Printf("%s\n%s\n\n", startHint(ic), prompt.CommandStyle.Render(StartCommand(ic)))
}

func startHint(ic *InstallationContext) string {
	switch {
	case ic.Service != "":
		return "🧪 To start the " + ic.Service + " service run: "
	case ic.CosmovisorInstalled:
		return "🧪 To start cosmovisor run: "
	default:
		return "🧪 To start cored run: "
	}
}

// StartCommand is the command that starts the installed node.
func StartCommand(ic *InstallationContext) string {
	switch {
	case ic.Mode == ModeClient:
		return "cored status --home " + ic.Home
	case ic.Service != "":
		return "sudo systemctl start " + ic.Service
	case ic.CosmovisorInstalled:
		return "DAEMON_NAME=cored DAEMON_HOME=" + production.ChainDir(ic.Home, string(ic.Profile.ChainID)) + " cosmovisor run start --home " + ic.Home
	default:
		return "cored start --home " + ic.Home
	}
}
