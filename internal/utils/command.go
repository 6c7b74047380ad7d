package utils

import (
	"strconv"
	"strings"
)

/**
 * Build the full argument list for a target executable
 * @param {string} argsTemplate - Template containing {port} and {data} placeholders
 * @param {int} port - Listen port substituted for {port}
 * @param {string} dataDir - Data directory substituted for {data}
 * @param {[]string} extraArgs - Caller-supplied arguments appended in order
 * @returns {[]string} Returns the argument list ready for process spawn
 * @description
 * - Placeholders are substituted first, then the template is split on
 *   whitespace; extra arguments are appended verbatim afterwards
 * - "--port {port} --dbpath {data}" with port 27111 and dataDir /x/data
 *   yields ["--port","27111","--dbpath","/x/data"]
 */
func BuildCommandLine(argsTemplate string, port int, dataDir string, extraArgs []string) []string {
	replacer := strings.NewReplacer(
		"{port}", strconv.Itoa(port),
		"{data}", dataDir,
	)
	args := strings.Fields(replacer.Replace(argsTemplate))
	return append(args, extraArgs...)
}
