package platform

// Configure applies every configurator to instance and returns it.
func Configure[T any](instance T, configurators ...func(T)) T {
	for _, configure := range configurators {
		configure(instance)
	}
	return instance
}
