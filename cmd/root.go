package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eryajf/servicebot/internal/config"
	"github.com/eryajf/servicebot/internal/logx"
)

// 构建信息，通过 -ldflags 注入
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:          "servicebot",
	Short:        "带记忆的问答机器人",
	Long:         `servicebot 先查询知识库记忆，未命中时结合联网搜索和语言模型生成答案并记住它。`,
	SilenceUsage: true,
	Version:      Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logx.Init(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logx.Sync()
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径 (默认查找 ., ./configs, $HOME/.servicebot 下的 config.yaml)")
}
