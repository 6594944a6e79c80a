package behaviour

import (
	"testing"
)

func TestComponentManagerRegister(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("Test")
	comp := &MockComponent{}
	obj.AddComponent(comp)

	cm.RegisterGameObject(obj)

	all := cm.GetAllGameObjects()
	if len(all) != 1 {
		t.Errorf("Expected 1 registered object, got %d", len(all))
	}
	if comp.startCalls != 1 {
		t.Errorf("Expected Start once on register, got %d", comp.startCalls)
	}
}

func TestComponentManagerUnregister(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("Test")

	cm.RegisterGameObject(obj)
	cm.UnregisterGameObject(obj)

	all := cm.GetAllGameObjects()
	if len(all) != 0 {
		t.Errorf("Expected 0 objects after unregister, got %d", len(all))
	}
	if obj.Active {
		t.Error("Unregistered object should be inactive")
	}
}

func TestComponentManagerUpdateAll(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("Test")
	comp := &MockComponent{}
	obj.AddComponent(comp)
	cm.RegisterGameObject(obj)

	cm.UpdateAll(0.25)
	cm.UpdateAll(0.5)

	if comp.updateCalls != 2 {
		t.Errorf("Expected 2 updates, got %d", comp.updateCalls)
	}
	if comp.lastDelta != 0.5 {
		t.Errorf("Expected last delta 0.5, got %f", comp.lastDelta)
	}
	if comp.startCalls != 1 {
		t.Errorf("Start should run once, got %d", comp.startCalls)
	}
}

func TestComponentManagerInactiveObject(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("Test")
	obj.Active = false
	comp := &MockComponent{}
	obj.AddComponent(comp)
	cm.RegisterGameObject(obj)

	cm.UpdateAll(0.016)

	if comp.updateCalls != 0 {
		t.Error("Update() should not be called on inactive object")
	}
}

func TestComponentManagerDisabledComponent(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("Test")
	comp := &MockComponent{}
	obj.AddComponent(comp)
	comp.SetEnabled(false)
	cm.RegisterGameObject(obj)

	cm.UpdateAll(0.016)

	if comp.updateCalls != 0 {
		t.Error("Update() should not be called on a disabled component")
	}
}

func TestComponentManagerDestroyDeferred(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("Doomed")
	comp := &MockComponent{}
	obj.AddComponent(comp)
	cm.RegisterGameObject(obj)

	cm.DestroyGameObject(obj)
	if len(cm.GetAllGameObjects()) != 1 {
		t.Fatal("Destroy should wait for the next update")
	}

	cm.UpdateAll(0.016)

	if len(cm.GetAllGameObjects()) != 0 {
		t.Error("Destroyed object should be removed on update")
	}
	if comp.updateCalls != 0 {
		t.Error("Destroyed object should not be updated")
	}
	if comp.destroyCalls != 1 {
		t.Errorf("Expected OnDestroy once, got %d", comp.destroyCalls)
	}
}

func TestComponentManagerFindGameObject(t *testing.T) {
	cm := NewComponentManager()
	obj := NewGameObject("FindMe")
	cm.RegisterGameObject(obj)

	found := cm.FindGameObject("FindMe")

	if found == nil {
		t.Error("FindGameObject should find registered object")
	}
	if found != obj {
		t.Error("FindGameObject returned wrong object")
	}
}

func TestComponentManagerFindGameObjectNotFound(t *testing.T) {
	cm := NewComponentManager()

	found := cm.FindGameObject("NotHere")

	if found != nil {
		t.Error("FindGameObject should return nil for non-existent object")
	}
}

func TestComponentManagerFindWithTag(t *testing.T) {
	cm := NewComponentManager()
	a := NewGameObject("A")
	a.Tag = "animal"
	b := NewGameObject("B")
	cm.RegisterGameObject(a)
	cm.RegisterGameObject(b)

	tagged := cm.FindGameObjectsWithTag("animal")
	if len(tagged) != 1 || tagged[0] != a {
		t.Errorf("Expected only A tagged, got %v", tagged)
	}
}

func TestComponentManagerClear(t *testing.T) {
	cm := NewComponentManager()
	cm.RegisterGameObject(NewGameObject("A"))
	cm.RegisterGameObject(NewGameObject("B"))

	cm.Clear()

	all := cm.GetAllGameObjects()
	if len(all) != 0 {
		t.Errorf("Clear should remove all objects, got %d", len(all))
	}
}
