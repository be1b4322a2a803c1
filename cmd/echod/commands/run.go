package commands

import (
	"fmt"

	"github.com/koanlabs/echod/src/config"
	enet "github.com/koanlabs/echod/src/net"
	"github.com/koanlabs/echod/src/node"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewRunCmd returns the command that starts an echod node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run node",
		PreRunE: loadConfig,
		RunE:    runEchod,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runEchod(cmd *cobra.Command, args []string) error {
	logger := _config.Logger()

	layer, err := buildStreamLayer(_config)
	if err != nil {
		logger.Error("Cannot initialize stream layer:", err)
		return err
	}
	defer layer.Close()

	stream, err := layer.Open()
	if err != nil {
		logger.Error("Cannot open session stream:", err)
		return err
	}
	defer stream.Close()

	logger.WithField("addr", stream.Addr()).Info("Session open")

	n := node.NewNode(stream, logger)

	return n.Run()
}

// buildStreamLayer picks the configured transport. Both providers are
// interchangeable as far as the node is concerned.
func buildStreamLayer(conf *config.Config) (enet.StreamLayer, error) {
	switch conf.Transport {
	case config.StdioTransport:
		return enet.NewStdioStreamLayer(), nil
	case config.TCPTransport:
		return enet.NewTCPStreamLayer(conf.BindAddr)
	default:
		return nil, fmt.Errorf("unknown transport %q", conf.Transport)
	}
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("transport", _config.Transport, "Session transport: stdio or tcp")
	cmd.Flags().StringP("listen", "l", _config.BindAddr, "Listen IP:Port for the tcp transport")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.LogFile, "Also write logs to this file")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config, err = parseConfig()
	if err != nil {
		return err
	}

	_config.Logger().WithFields(logrus.Fields{
		"Transport": _config.Transport,
		"BindAddr":  _config.BindAddr,
		"LogLevel":  _config.LogLevel,
		"LogFile":   _config.LogFile,
	}).Debug("RUN")

	return nil
}

//Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// cmd.Flags() includes flags from this command and all persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	viper.SetConfigName("echod") // name of config file (without extension)
	viper.AddConfigPath(".")     // search the working directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debug("No config file found")
	} else {
		return err
	}

	return nil
}

//Retrieve the default environment configuration.
func parseConfig() (*config.Config, error) {
	conf := config.NewDefaultConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}
	return conf, err
}
