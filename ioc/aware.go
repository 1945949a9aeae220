package ioc

// BeanNameAware is implemented by beans that want to know their registry name.
// SetBeanName is called after dependencies are injected.
type BeanNameAware interface {
	SetBeanName(name string)
}

// ContainerAware is implemented by beans that want a reference to the
// container that created them.
type ContainerAware interface {
	SetContainer(c *Container)
}

// InitializingBean is implemented by beans that need to validate or finish
// setup once every callback has run. A returned error aborts creation.
type InitializingBean interface {
	AfterPropertiesSet() error
}
