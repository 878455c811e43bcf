package install

import (
	"fmt"

	"github.com/CoreumFoundation/node-installer/pkg/config"
	"github.com/CoreumFoundation/node-installer/pkg/environments/production"
	"github.com/CoreumFoundation/node-installer/pkg/network"
	"github.com/CoreumFoundation/node-installer/pkg/prompt"
)

// InstallMode is what the operator is setting up.
type InstallMode int

const (
	ModeNode InstallMode = iota + 1
	ModeClient
)

func (m InstallMode) String() string {
	switch m {
	case ModeNode:
		return "node"
	case ModeClient:
		return "client"
	default:
		return "unknown"
	}
}

func installMenu() prompt.Menu[InstallMode] {
	return prompt.Menu[InstallMode]{
		Field: "install",
		Title: "Please choose the desired installation:",
		Hint:  "You can select the installation using the --install flag.",
		Choices: []prompt.Choice[InstallMode]{
			{Key: "1", Keyword: "node", Label: "Node (full node, validator or seed)", Value: ModeNode},
			{Key: "2", Keyword: "client", Label: "Client (light client to interact with the network)", Value: ModeClient},
		},
	}
}

func networkMenu() prompt.Menu[network.ChainID] {
	m := prompt.Menu[network.ChainID]{
		Field: "network",
		Title: "Please choose the desired network:",
		Hint:  "You can select the network using the --network flag.",
	}
	for i, id := range network.IDs() {
		p := network.MustLookup(id)
		m.Choices = append(m.Choices, prompt.Choice[network.ChainID]{
			Key:     fmt.Sprint(i + 1),
			Keyword: string(id),
			Label:   fmt.Sprintf("%s (%s)", p.Name, id),
			Value:   id,
		})
	}
	return m
}

func pruningMenu() prompt.Menu[production.PruningPolicy] {
	return prompt.Menu[production.PruningPolicy]{
		Field: "pruning",
		Title: "Please choose your desired pruning settings:",
		Hint:  "You can select the pruning settings using the --pruning flag.",
		Choices: []prompt.Choice[production.PruningPolicy]{
			{Key: "1", Keyword: "default", Label: "Default: (keep last 100,000 states to query the last week worth of data and prune at 100 block intervals)", Value: production.PruningDefault},
			{Key: "2", Keyword: "nothing", Label: "Nothing: (keep everything, select this if running an archive node)", Value: production.PruningNothing},
			{Key: "3", Keyword: "everything", Label: "Everything: (keep last 10,000 states and prune at a random prime block interval)", Value: production.PruningEverything},
		},
	}
}

func homeMenu() prompt.Menu[bool] {
	return prompt.YesNo("home",
		"Do you want to install Coreum in the default location?",
		fmt.Sprintf("Yes, use default location %s (recommended)", config.DefaultHome()),
		"No, specify custom location",
		"You can specify the home using the --home flag.",
	)
}

func monikerMenu() prompt.Menu[bool] {
	return prompt.YesNo("moniker",
		"Do you want to use the default moniker?",
		fmt.Sprintf("Yes, use default moniker (%s)", config.DefaultMoniker),
		"No, specify custom moniker",
		"You can specify the moniker using the --moniker flag.",
	)
}

func cosmovisorMenu() prompt.Menu[bool] {
	return prompt.YesNo("cosmovisor",
		"Do you want to install cosmovisor?",
		"Yes, download and install cosmovisor (default)",
		"No",
		"You can specify the cosmovisor setup using the --cosmovisor flag.",
	)
}
