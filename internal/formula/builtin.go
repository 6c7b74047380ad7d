package formula

import "mongo-keeper/internal/models"

/**
 * Built-in formula table. MongoDB is the primary target; etcd is carried to
 * keep the table honest about being data-driven. Callers bootstrapping other
 * services register their own formulas via GetRegistry().Register.
 */
func builtinFormulas() []*models.Formula {
	return []*models.Formula{
		{
			Name:     "mongodb",
			Version:  "7.0.14",
			Exec:     "bin/mongod",
			ExecArgs: "--port {port} --dbpath {data}",
			Port:     27017,
			Platforms: []models.PlatformSpec{
				{Name: "linux-x64", SourceURL: "https://fastdl.mongodb.org/linux/mongodb-linux-x86_64-ubuntu2204-7.0.14.tgz"},
				{Name: "darwin-x64", SourceURL: "https://fastdl.mongodb.org/osx/mongodb-macos-x86_64-7.0.14.tgz"},
				{Name: "darwin-arm64", SourceURL: "https://fastdl.mongodb.org/osx/mongodb-macos-arm64-7.0.14.tgz"},
				{Name: "win32-x64", SourceURL: "https://fastdl.mongodb.org/windows/mongodb-windows-x86_64-7.0.14.zip"},
			},
		},
		{
			Name:     "etcd",
			Version:  "3.5.17",
			Exec:     "etcd",
			ExecArgs: "--data-dir {data} --listen-client-urls http://127.0.0.1:{port} --advertise-client-urls http://127.0.0.1:{port}",
			Port:     2379,
			Platforms: []models.PlatformSpec{
				{Name: "linux-x64", SourceURL: "https://github.com/etcd-io/etcd/releases/download/v3.5.17/etcd-v3.5.17-linux-amd64.tar.gz"},
				{Name: "linux-arm64", SourceURL: "https://github.com/etcd-io/etcd/releases/download/v3.5.17/etcd-v3.5.17-linux-arm64.tar.gz"},
				{Name: "darwin-x64", SourceURL: "https://github.com/etcd-io/etcd/releases/download/v3.5.17/etcd-v3.5.17-darwin-amd64.zip"},
				{Name: "darwin-arm64", SourceURL: "https://github.com/etcd-io/etcd/releases/download/v3.5.17/etcd-v3.5.17-darwin-arm64.zip"},
			},
		},
	}
}
