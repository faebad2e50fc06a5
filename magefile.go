//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build 编译全部服务到 bin/ 目录
func Build() error {
	mg.Deps(BuildMCP, BuildAPI)
	return nil
}

// BuildMCP 编译 MCP 服务器
func BuildMCP() error {
	fmt.Println("编译 mcp_server...")
	return sh.Run("go", "build", "-o", "bin/mcp_server", "./cmd/mcp_server")
}

// BuildAPI 编译 HTTP API 服务器
func BuildAPI() error {
	fmt.Println("编译 api_server...")
	return sh.Run("go", "build", "-o", "bin/api_server", "./cmd/api_server")
}

// Test 运行全部测试
func Test() error {
	fmt.Println("运行测试...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage 生成测试覆盖率报告
func Coverage() error {
	fmt.Println("生成覆盖率报告...")
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Lint 检查代码格式与静态问题
func Lint() error {
	fmt.Println("检查代码格式...")
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("以下文件未格式化:\n%s", out)
	}
	return sh.RunV("go", "vet", "./...")
}

// Clean 清理构建产物
func Clean() {
	fmt.Println("清理构建产物...")
	os.RemoveAll("bin")
	os.Remove("coverage.out")
	os.Remove("coverage.html")
}
