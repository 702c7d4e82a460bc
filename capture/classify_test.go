// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package capture

import "testing"

func TestClassify(t *testing.T) {
	servers := NewServerSet([]string{"1.2.3.4"})

	if dir, ok := servers.Classify("1.2.3.4", "9.9.9.9"); !ok || dir != DirectionServer {
		t.Errorf("Classify(server src) = %v, %v", dir, ok)
	}
	if dir, ok := servers.Classify("9.9.9.9", "1.2.3.4"); !ok || dir != DirectionClient {
		t.Errorf("Classify(server dst) = %v, %v", dir, ok)
	}
	if _, ok := servers.Classify("9.9.9.9", "8.8.8.8"); ok {
		t.Errorf("Classify(neither) should not match")
	}
}
