package utils

import (
	"reflect"
	"testing"
)

func TestBuildCommandLine(t *testing.T) {
	got := BuildCommandLine("--port {port} --dbpath {data}", 27111, "/x/data", nil)
	want := []string{"--port", "27111", "--dbpath", "/x/data"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildCommandLine = %v, want %v", got, want)
	}
}

func TestBuildCommandLineAppendsExtraArgsLast(t *testing.T) {
	got := BuildCommandLine("--port {port} --dbpath {data}", 27111, "/x/data",
		[]string{"--quiet", "--wiredTigerCacheSizeGB", "1"})
	want := []string{"--port", "27111", "--dbpath", "/x/data", "--quiet", "--wiredTigerCacheSizeGB", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildCommandLine = %v, want %v", got, want)
	}
}

func TestBuildCommandLineRepeatedPlaceholders(t *testing.T) {
	got := BuildCommandLine("--data-dir {data} --listen-client-urls http://127.0.0.1:{port} --advertise-client-urls http://127.0.0.1:{port}",
		2479, "/srv/etcd", nil)
	want := []string{
		"--data-dir", "/srv/etcd",
		"--listen-client-urls", "http://127.0.0.1:2479",
		"--advertise-client-urls", "http://127.0.0.1:2479",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildCommandLine = %v, want %v", got, want)
	}
}

func TestBuildCommandLineEmptyTemplate(t *testing.T) {
	got := BuildCommandLine("", 1, "/d", []string{"--only"})
	want := []string{"--only"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildCommandLine = %v, want %v", got, want)
	}
}
