package transcript

import "testing"

func TestAppendLeavesReceiverUntouched(t *testing.T) {
	base := Transcript{
		{Role: RoleUser, Content: "I need mobile plans"},
		{Role: RoleAssistant, Content: "Here are the categories."},
	}

	extended := base.Append(Turn{Role: RoleUser, Content: "what about TV?"})

	if len(base) != 2 {
		t.Fatalf("receiver length = %d, want 2", len(base))
	}
	if len(extended) != 3 {
		t.Fatalf("extended length = %d, want 3", len(extended))
	}
	if extended[2].Content != "what about TV?" {
		t.Errorf("appended turn = %+v", extended[2])
	}

	// The copies must not share backing storage.
	extended[0].Content = "mutated"
	if base[0].Content != "I need mobile plans" {
		t.Error("append aliased the receiver's storage")
	}
}

func TestAppendFromNil(t *testing.T) {
	var base Transcript

	extended := base.Append(Turn{Role: RoleUser, Content: "hello"})

	if len(extended) != 1 {
		t.Fatalf("extended length = %d, want 1", len(extended))
	}
	if base != nil {
		t.Errorf("receiver grew: %v", base)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := Transcript{{Role: RoleUser, Content: "original"}}

	clone := base.Clone()
	clone[0].Content = "changed"

	if base[0].Content != "original" {
		t.Error("clone shares storage with the original")
	}
}
