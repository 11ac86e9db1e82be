package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/assistlabs/bridge-assist-go/cmd"
	"github.com/assistlabs/bridge-assist-go/logconfig"
)

const (
	ENV_CONFIG_FILE_PATH = "BRIDGE_CONFIG"
)

func main() {
	logconfig.ConfigInfoLogger()

	// Tool to read environment variables
	viper.AutomaticEnv()

	// Accessing an environment variable of configuration file location.
	_config_file := viper.GetString(ENV_CONFIG_FILE_PATH)
	fmt.Printf("Bridge server configuration file = %s\n", _config_file)

	// See if file exists
	if !cmd.FileExists(_config_file) {
		fmt.Printf("Bridge server configuration file not found: %s\n", _config_file)
		return
	}

	// Read from config file.
	success := initializeViper(_config_file)
	if !success {
		return
	}

	// Make the configuration
	bsc := PrepareBridgeServerConfig()

	fmt.Println("Starting bridge server... press Ctrl+C to kill the server")
	// Start server and block.
	cmd.StartBridgeServerAndWait(bsc)
}

func initializeViper(filePath string) bool {
	viper.SetConfigFile(filePath)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("Error reading configuration file, %s", err)
		return false
	}
	return true
}

// PrepareBridgeServerConfig reads configuration variables and returns a BridgeServerConfig.
func PrepareBridgeServerConfig() *cmd.BridgeServerConfig {
	return &cmd.BridgeServerConfig{
		// state side
		DbFilePath: viper.GetString("DB_FILE_PATH"),
		// bridge side
		Owner:          viper.GetString("BRIDGE_OWNER"),
		RelayerRole:    viper.GetString("BRIDGE_RELAYER_ROLE"),
		TokenAccount:   viper.GetString("BRIDGE_TOKEN_ACCOUNT"),
		FeeWallet:      viper.GetString("BRIDGE_FEE_WALLET"),
		LimitPerSend:   viper.GetString("BRIDGE_LIMIT_PER_SEND"),
		FeeNumerator:   uint16(viper.GetUint32("BRIDGE_FEE_NUMERATOR")),
		CostRegister:   viper.GetString("BRIDGE_COST_REGISTER"),
		CostOnTransfer: viper.GetString("BRIDGE_COST_ON_TRANSFER"),
		CostFulfill:    viper.GetString("BRIDGE_COST_FULFILL"),
		CostAddChain:   viper.GetString("BRIDGE_COST_ADD_CHAIN"),
		// Http side
		HttpIp:   viper.GetString("HTTP_IP"),
		HttpPort: viper.GetString("HTTP_PORT"),
	}
}
