package hotkey

// FakeSource replays scripted key events for tests.
type FakeSource struct {
	handle func(key Key, pressed bool)
}

func NewFakeSource() *FakeSource {
	return &FakeSource{}
}

func (f *FakeSource) Run(handle func(key Key, pressed bool)) error {
	f.handle = handle
	return nil
}

func (f *FakeSource) Close() {}

func (f *FakeSource) Press(name string) {
	f.handle(Identify(name), true)
}

func (f *FakeSource) Release(name string) {
	f.handle(Identify(name), false)
}
